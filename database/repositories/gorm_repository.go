// Copyright (C) 2023 Tim Bastin, l3montree GmbH
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
	"github.com/iscandes/web-sub000/shared"
	"github.com/iscandes/web-sub000/utils"
)

type GormRepository[ID comparable, T utils.Tabler] struct {
	db shared.DB
}

func newGormRepository[ID comparable, T utils.Tabler](db shared.DB) *GormRepository[ID, T] {
	return &GormRepository[ID, T]{
		db: db,
	}
}

func (g *GormRepository[ID, T]) GetDB(tx shared.DB) shared.DB {
	if tx != nil {
		return tx
	}

	return g.db
}

func (g *GormRepository[ID, T]) All(tx shared.DB) ([]T, error) {
	var ts []T
	err := g.GetDB(tx).Order("created_at ASC").Find(&ts).Error
	return ts, err
}

func (g *GormRepository[ID, T]) Create(tx shared.DB, t *T) error {
	return g.GetDB(tx).Create(t).Error
}

func (g *GormRepository[ID, T]) Save(tx shared.DB, t *T) error {
	return g.GetDB(tx).Save(t).Error
}

func (g *GormRepository[ID, T]) Read(tx shared.DB, id ID) (T, error) {
	var t T
	err := g.GetDB(tx).First(&t, "id = ?", id).Error

	return t, err
}

func (g *GormRepository[ID, T]) Delete(tx shared.DB, id ID) error {
	var t T
	return g.GetDB(tx).Where("id = ?", id).Delete(&t).Error
}

func (g *GormRepository[ID, T]) List(tx shared.DB, ids []ID) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	var ts []T

	err := g.GetDB(tx).Where("id IN ?", ids).Find(&ts).Error
	if err != nil {
		return ts, err
	}
	return ts, nil
}
