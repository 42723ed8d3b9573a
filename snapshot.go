/*
Copyright (C) 2024 the HSAMI+ Core authors.
This file is part of hsami.

hsami is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

hsami is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with hsami.  If not, see <http://www.gnu.org/licenses/>.
*/

package hsami

import (
	"encoding/gob"
	"fmt"
	"io"
)

// ResultsDataVersion is bumped whenever the Results/Outputs/StateSnapshot/Deltas
// schema changes in a way that makes an old snapshot unreadable, mirroring the
// teacher's inmap.VarGridDataVersion check in save.go.
const ResultsDataVersion = "1.0"

// versionResults is the gob wrapper actually written to disk, carrying the data
// version alongside the payload so Load can refuse a stale snapshot instead of
// silently decoding a mismatched schema.
type versionResults struct {
	DataVersion string
	Results     Results
}

// Snapshot gob-encodes r to w for later inspection without re-running the
// simulation (supplemented feature 2, grounded on the teacher's inmap.Save in
// save.go).
func (r *Results) Snapshot(w io.Writer) error {
	if r == nil || len(r.Outputs) == 0 {
		return fmt.Errorf("hsami: Results.Snapshot: no steps to save")
	}
	data := versionResults{DataVersion: ResultsDataVersion, Results: *r}
	if err := gob.NewEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("hsami: Results.Snapshot: %v", err)
	}
	return nil
}

// LoadSnapshot decodes a Results previously written by Snapshot, mirroring the
// teacher's inmap.Load in save.go including its data-version compatibility check.
func LoadSnapshot(r io.Reader) (*Results, error) {
	var data versionResults
	if err := gob.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("hsami: LoadSnapshot: %v", err)
	}
	if data.DataVersion != ResultsDataVersion {
		return nil, fmt.Errorf("hsami: snapshot data version %s is not compatible with the required version %s",
			data.DataVersion, ResultsDataVersion)
	}
	return &data.Results, nil
}
