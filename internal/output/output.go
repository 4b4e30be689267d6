/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package output provides shared output formatting for rntsc CLI commands:
// either a file written via viper's "output" flag, or stdout.
package output

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/viper"

	"github.com/rnxkit/rntsc/fs"
)

// Write formats value as "text" (fmt.Stringer or %v) or "json" and writes it
// to the path bound to viper's "output" flag, or stdout if unset.
func Write(osfs fs.FileSystem, value any, format string) error {
	var rendered string

	switch format {
	case "json":
		data, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling output as json: %w", err)
		}
		rendered = string(data)
	default:
		if s, ok := value.(fmt.Stringer); ok {
			rendered = s.String()
		} else {
			rendered = fmt.Sprintf("%v", value)
		}
	}

	if outputPath := viper.GetString("output"); outputPath != "" {
		return osfs.WriteFile(outputPath, []byte(rendered+"\n"), 0644)
	}
	fmt.Println(rendered)
	return nil
}
