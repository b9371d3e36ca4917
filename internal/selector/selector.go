// Package selector picks the comments that belong to one page out of the cache snapshot.
package selector

import (
	"github.com/qepting91/jamcomments/internal/domain"
	"github.com/qepting91/jamcomments/internal/storage"
)

// Select returns every comment whose postUrl equals baseURL+permalink, in snapshot order.
// The URL is compared byte for byte; trailing slashes and scheme case matter.
// No match yields an empty collection. A missing snapshot yields a CacheMissingError.
func Select(store domain.Store, baseURL, permalink string) (domain.Collection, error) {
	all, err := store.Get()
	if err != nil {
		return nil, err
	}
	return Filter(all, baseURL+permalink), nil
}

// Filter keeps the comments attached to target
func Filter(all domain.Collection, target string) domain.Collection {
	out := domain.Collection{}
	for _, c := range all {
		if c.PostURL == target {
			out = append(out, c)
		}
	}
	return out
}

// CommentsForPage selects from the snapshot file at cachePath
func CommentsForPage(cachePath, baseURL, permalink string) (domain.Collection, error) {
	return Select(storage.NewFileStore(cachePath), baseURL, permalink)
}
