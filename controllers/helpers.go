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
	"fmt"

	"github.com/iscandes/web-sub000/shared"
	"github.com/labstack/echo/v4"
)

// httpError turns an engine error into an echo error with the status of its
// classification. The classified error stays available as internal error.
func httpError(err error, message string) error {
	status := shared.HTTPStatus(err)
	if shared.IsValidation(err) {
		// validation messages are safe to show
		message = fmt.Sprintf("%s: %s", message, err.Error())
	}
	return echo.NewHTTPError(status, message).WithInternal(err)
}

func bindAndValidate(ctx shared.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	if err := shared.ValidateStruct(req); err != nil {
		return echo.NewHTTPError(400, fmt.Sprintf("could not validate request: %s", err.Error())).WithInternal(err)
	}
	return nil
}
