// Command pick prints random ball selections for a game.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"lottokit/internal/draw"
	"lottokit/internal/pkg/models"
)

func main() {
	game := flag.String("game", models.GameSSQ, "game to pick for (ssq or dlt)")
	count := flag.Int("n", 1, "number of selections")
	flag.Parse()

	rule, ok := models.RuleByID(*game)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown game %q (supported: %s)\n", *game, strings.Join(models.GameIDs(), ", "))
		os.Exit(1)
	}

	for i := 0; i < *count; i++ {
		pick, err := draw.Numbers(rule)
		if err != nil {
			fmt.Fprintln(os.Stderr, "draw failed:", err)
			os.Exit(1)
		}
		fmt.Printf("%s | %s\n", formatBalls(pick.Red), formatBalls(pick.Blue))
	}
}

func formatBalls(balls []int) string {
	parts := make([]string, len(balls))
	for i, b := range balls {
		parts[i] = fmt.Sprintf("%02d", b)
	}
	return strings.Join(parts, " ")
}
