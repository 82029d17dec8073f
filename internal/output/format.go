package output

import (
	"encoding/json"
	"fmt"
	"os"
)

// Error prints a formatted message to stderr with an Error: prefix.
func Error(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// JSON writes v to stdout as indented JSON.
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// JSONError writes a machine-readable error object to stdout.
func JSONError(code, message string) {
	_ = JSON(map[string]string{"error": code, "message": message})
}
