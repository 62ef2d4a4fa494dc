package menu

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 1 << 20

func loadLineItems(ctx Context) ([]Item, error) {
	if ctx.Input == nil {
		return nil, errors.New("lines source requires an input")
	}
	scanner := bufio.NewScanner(ctx.Input)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	items := []Item{}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		text := line
		items = append(items, Item{
			ID:       strconv.Itoa(lineNo),
			Label:    text,
			OnSelect: func() { ctx.Results.Record(text) },
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input lines: %w", err)
	}
	return items, nil
}
