package utils

import (
	"os"
	"strings"
)

const deviceTreeModel = "/proc/device-tree/model"

// IsRaspberryPi reports whether the process runs on a Raspberry Pi by
// checking the device-tree model string.
func IsRaspberryPi() bool {
	data, err := os.ReadFile(deviceTreeModel)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(data)), "raspberry pi")
}
