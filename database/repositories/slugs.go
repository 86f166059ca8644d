// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package repositories

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"github.com/iscandes/web-sub000/database"
	"github.com/iscandes/web-sub000/shared"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// MakeSlug derives a slug from name. Names without any slug characters fall
// back to the given default.
func MakeSlug(name string, fallback string) string {
	s := slug.Make(name)
	if s == "" {
		return fallback
	}
	return s
}

// allocateSlug picks the first free slug for base in table. Concurrent
// allocations of the same base wait on each other until the first one commits,
// so they never race for the same unique slug.
func allocateSlug(tx shared.DB, table string, model any, base string) (string, error) {
	if err := database.LockName(tx, slugLockKey(table, base)); err != nil {
		return "", err
	}
	return firstFreeSlug(tx, model, base)
}

func slugLockKey(table, base string) string {
	return "slug:" + table + ":" + base
}

// firstFreeSlug returns base if no row of model uses it, otherwise base-N with
// the lowest free N. The result is deterministic for a given table state.
func firstFreeSlug(tx shared.DB, model any, base string) (string, error) {
	var slugs []string
	err := tx.Model(model).
		Where("slug = ? OR slug LIKE ?", base, likeEscaper.Replace(base)+"-%").
		Pluck("slug", &slugs).Error
	if err != nil {
		return "", err
	}

	return nextFreeSlug(base, slugs), nil
}

func nextFreeSlug(base string, taken []string) string {
	existing := make(map[string]bool, len(taken))
	for _, s := range taken {
		existing[s] = true
	}

	if !existing[base] {
		return base
	}

	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !existing[candidate] {
			return candidate
		}
	}
}
