package storage

import (
	"sort"

	"github.com/mcoot/gamevault/internal/model"
)

// SortNewestFirst orders games by creation time, newest first, breaking ties by id
func SortNewestFirst(games []*model.CustomGame) {
	sort.SliceStable(games, func(i, j int) bool {
		if !games[i].CreatedAt.Equal(games[j].CreatedAt) {
			return games[i].CreatedAt.After(games[j].CreatedAt)
		}
		return games[i].ID > games[j].ID
	})
}
