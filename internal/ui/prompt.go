package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"movie-recommender/internal/logging"
	"movie-recommender/internal/recommend"
)

// RunPrompt runs the line-based prompt: list the catalog, read a username and a
// movie title, then print the recommendations. Lookup failures are printed, not returned.
func RunPrompt(in io.Reader, out io.Writer, scorer *recommend.Scorer, topN int) error {
	scanner := bufio.NewScanner(in)
	w := bufio.NewWriter(out)
	defer w.Flush()

	fmt.Fprintln(w, "🎬 Welcome to the Movie Recommendation System! 🎬")
	fmt.Fprintln(w, "Available movies:")
	for _, title := range scorer.Titles() {
		fmt.Fprintln(w, "-", title)
	}

	fmt.Fprintf(w, "\nEnter your username (%s): ", strings.Join(scorer.Users(), ", "))
	user, err := readLine(scanner, w)
	if err != nil {
		return err
	}

	fmt.Fprint(w, "Enter your favorite movie from the list above: ")
	movie, err := readLine(scanner, w)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\n🎯 Recommendations for %s based on '%s':\n", user, movie)

	titles, err := scorer.Recommend(user, movie, topN)
	if err != nil {
		logging.Info("Prompt lookup failed: %v", err)
		title, message := DescribeError(err)
		fmt.Fprintln(w, "-", title)
		fmt.Fprintln(w, " ", message)
		return nil
	}

	for _, title := range titles {
		fmt.Fprintln(w, "-", title)
	}
	return nil
}

func readLine(scanner *bufio.Scanner, w *bufio.Writer) (string, error) {
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", fmt.Errorf("failed to read input: %w", io.ErrUnexpectedEOF)
	}
	return strings.TrimSpace(scanner.Text()), nil
}
