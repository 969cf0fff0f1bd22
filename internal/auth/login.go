// Package auth provides Twitter API authentication functionality.
package auth

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// Credentials holds the result of the interactive prompt
type Credentials struct {
	AccessToken string
}

// InteractiveLogin prompts the user for an API bearer token. The token is
// read without echo when stdin is a terminal.
func InteractiveLogin() (*Credentials, error) {
	fmt.Print("Twitter API bearer token: ")

	var token string
	if term.IsTerminal(int(syscall.Stdin)) {
		tokenBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println() // Print newline after hidden input
		if err != nil {
			return nil, fmt.Errorf("failed to read token: %w", err)
		}
		token = string(tokenBytes)
	} else {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("failed to read token: %w", err)
		}
		token = line
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("empty token")
	}

	return &Credentials{AccessToken: token}, nil
}
