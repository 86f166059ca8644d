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
package shared

import (
	"fmt"

	"github.com/iscandes/web-sub000/database/models"
	"github.com/labstack/echo/v4"
)

func GetDeveloperSlug(c echo.Context) (string, error) {
	developerSlug := SanitizeParam(c.Param("developerSlug"))
	if developerSlug == "" {
		return "", fmt.Errorf("could not get developer slug")
	}
	return developerSlug, nil
}

func GetProjectSlug(c echo.Context) (string, error) {
	projectSlug := SanitizeParam(c.Param("projectSlug"))
	if projectSlug == "" {
		return "", fmt.Errorf("could not get project slug")
	}
	return projectSlug, nil
}

func SetDeveloper(c echo.Context, developer models.Developer) {
	c.Set("developer", developer)
}

func GetDeveloper(c echo.Context) models.Developer {
	return c.Get("developer").(models.Developer)
}

func SetProject(c echo.Context, project models.Project) {
	c.Set("project", project)
}

func GetProject(c echo.Context) models.Project {
	return c.Get("project").(models.Project)
}
