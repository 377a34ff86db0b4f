package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// quitWords end the interactive session.
var quitWords = map[string]bool{
	"quit": true,
	"exit": true,
	"q":    true,
}

// Interactive runs a read-query-print loop over r and w until the input ends,
// the user enters a blank line or a quit word, or ctx is cancelled. A query
// that fails is reported and the loop continues; no single query terminates
// the session.
func (a *Agent) Interactive(ctx context.Context, r io.Reader, w io.Writer) error {
	fmt.Fprintln(w, "SPARTA Interactive Query Mode")
	fmt.Fprintln(w, "Enter your questions about space security (blank line or 'quit' to exit)")
	fmt.Fprintln(w, "Example queries:")
	fmt.Fprintln(w, "  - How can attackers jam satellite signals?")
	fmt.Fprintln(w, "  - What are the reconnaissance techniques?")
	fmt.Fprintln(w, "  - Tell me about supply chain attacks on spacecraft")

	scanner := bufio.NewScanner(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(w, "\nYour question: ")
		if !scanner.Scan() {
			break
		}

		query := strings.TrimSpace(scanner.Text())
		if query == "" || quitWords[strings.ToLower(query)] {
			break
		}

		answer, err := a.AnswerQuery(ctx, query)
		if err != nil {
			a.logger.Warn("query failed", "query", query, "err", err)
			fmt.Fprintf(w, "Query failed: %v\n", err)
			continue
		}
		fmt.Fprintln(w, answer)
	}

	fmt.Fprintln(w, "Goodbye!")
	return scanner.Err()
}
