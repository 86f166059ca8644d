// Copyright (C) 2024 l3montree GmbH
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
package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/iscandes/web-sub000/database/models"
	"github.com/iscandes/web-sub000/dtos"
	"github.com/iscandes/web-sub000/mocks"
	"github.com/iscandes/web-sub000/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestDeveloperControllerCreate(t *testing.T) {
	t.Run("should reject an unknown status", func(t *testing.T) {
		service := mocks.NewIntegrityService(t)
		ctx, _ := newJSONContext(http.MethodPost, map[string]string{"name": "Acme", "status": "retired"})

		err := NewDeveloperController(service).Create(ctx)
		assert.Equal(t, 400, httpStatusOf(t, err))
	})

	t.Run("should reject an invalid website", func(t *testing.T) {
		service := mocks.NewIntegrityService(t)
		ctx, _ := newJSONContext(http.MethodPost, map[string]string{"name": "Acme", "website": "not a url"})

		err := NewDeveloperController(service).Create(ctx)
		assert.Equal(t, 400, httpStatusOf(t, err))
	})

	t.Run("should create the developer", func(t *testing.T) {
		service := mocks.NewIntegrityService(t)
		service.On("CreateDeveloper", mock.Anything, mock.MatchedBy(func(req dtos.DeveloperCreateRequest) bool {
			return req.Name == "Acme"
		})).Return(models.Developer{Model: models.Model{ID: uuid.New()}, Name: "Acme", Slug: "acme", Status: models.DeveloperStatusActive}, nil)

		ctx, rec := newJSONContext(http.MethodPost, map[string]string{"name": "Acme"})

		assert.Nil(t, NewDeveloperController(service).Create(ctx))

		var dto dtos.DeveloperDTO
		assert.Nil(t, json.Unmarshal(rec.Body.Bytes(), &dto))
		assert.Equal(t, "acme", dto.Slug)
		assert.Equal(t, int64(0), dto.ProjectsCount)
		assert.Equal(t, map[string]any{}, dto.Contact)
	})
}

func TestDeveloperControllerDelete(t *testing.T) {
	t.Run("should report the number of removed projects", func(t *testing.T) {
		service := mocks.NewIntegrityService(t)
		developer := models.Developer{Model: models.Model{ID: uuid.New()}, Name: "Acme"}
		service.On("DeleteDeveloper", mock.Anything, developer.ID).Return(shared.DeleteDeveloperResult{DeletedProjectCount: 3}, nil)

		ctx, rec := newJSONContext(http.MethodDelete, nil)
		shared.SetDeveloper(ctx, developer)

		assert.Nil(t, NewDeveloperController(service).Delete(ctx))
		assert.JSONEq(t, `{"deletedProjectCount":3}`, rec.Body.String())
	})

	t.Run("should return 404 if the developer vanished", func(t *testing.T) {
		service := mocks.NewIntegrityService(t)
		developer := models.Developer{Model: models.Model{ID: uuid.New()}}
		service.On("DeleteDeveloper", mock.Anything, developer.ID).Return(shared.DeleteDeveloperResult{}, shared.NewNotFoundError("developer", developer.ID))

		ctx, _ := newJSONContext(http.MethodDelete, nil)
		shared.SetDeveloper(ctx, developer)

		err := NewDeveloperController(service).Delete(ctx)
		assert.Equal(t, 404, httpStatusOf(t, err))
	})
}

func TestDeveloperControllerUpdate(t *testing.T) {
	service := mocks.NewIntegrityService(t)
	developer := models.Developer{Model: models.Model{ID: uuid.New()}, Name: "Acme", Slug: "acme"}
	service.On("UpdateDeveloper", mock.Anything, developer.ID, mock.MatchedBy(func(patch dtos.DeveloperPatchRequest) bool {
		return patch.Name != nil && *patch.Name == "Acme Holdings"
	})).Return(models.Developer{Model: developer.Model, Name: "Acme Holdings", Slug: "acme"}, nil)

	ctx, rec := newJSONContext(http.MethodPatch, map[string]string{"name": "Acme Holdings"})
	shared.SetDeveloper(ctx, developer)

	assert.Nil(t, NewDeveloperController(service).Update(ctx))

	var dto dtos.DeveloperDTO
	assert.Nil(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, "Acme Holdings", dto.Name)
	assert.Equal(t, "acme", dto.Slug)
}
