package menu

import (
	"fmt"
	"strconv"
)

const demoItemCount = 20

func loadDemoItems(ctx Context) ([]Item, error) {
	items := make([]Item, 0, demoItemCount)
	for i := 0; i < demoItemCount; i++ {
		index := i
		id := strconv.Itoa(index)
		items = append(items, Item{
			ID:    id,
			Label: id,
			OnSelect: func() {
				ctx.Results.Record(fmt.Sprintf("selected %d", index))
			},
		})
	}
	return items, nil
}
