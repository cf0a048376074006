package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// confirm asks a yes/no question on out and reads the answer from input.
// Anything but y or yes, including EOF, means no.
func confirm(out io.Writer, input io.Reader, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
