package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fivetwenty-io/lemon-client/internal/constants"
)

// readPIN returns the PIN from the --pin flag, or prompts for it without echo
// when stdin is a terminal.
func readPIN(cmd *cobra.Command, flagValue string) (int64, error) {
	if flagValue == "" {
		fd := int(os.Stdin.Fd()) //nolint:gosec // file descriptors fit in int
		if !term.IsTerminal(fd) {
			return 0, fmt.Errorf("%w, pass --pin", constants.ErrPINRequired)
		}

		_, _ = fmt.Fprint(cmd.ErrOrStderr(), "PIN: ")

		pinBytes, err := term.ReadPassword(fd)

		_, _ = fmt.Fprintln(cmd.ErrOrStderr())

		if err != nil {
			return 0, fmt.Errorf("failed to read PIN: %w", err)
		}

		flagValue = string(pinBytes)
	}

	return parsePIN(flagValue)
}

func parsePIN(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, constants.ErrPINRequired
	}

	pin, err := strconv.ParseInt(value, 10, 64)
	if err != nil || pin < 0 {
		return 0, constants.ErrInvalidPIN
	}

	return pin, nil
}

// resolveIdempotency turns "auto" into a fresh UUID.
func resolveIdempotency(value string) string {
	if strings.EqualFold(value, constants.IdempotencyAuto) {
		return uuid.NewString()
	}

	return value
}

// confirm asks a yes/no question and reports whether the answer was yes.
func confirm(in io.Reader, out io.Writer, question string) bool {
	_, _ = fmt.Fprintf(out, "%s (y/N): ", question)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))

	return answer == "y" || answer == "yes"
}
