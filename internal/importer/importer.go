// Package importer loads member profiles from CSV and XLSX files.
package importer

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/digbiz/insight-engine/internal/db"
	"github.com/digbiz/insight-engine/internal/model"
	"github.com/digbiz/insight-engine/internal/store"
)

// Read parses a profile file, dispatching on extension (.csv or .xlsx).
func Read(path string) ([]model.Profile, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(path)
	case ".xlsx":
		return ReadXLSX(path)
	default:
		return nil, eris.Errorf("importer: unsupported file type %q", filepath.Ext(path))
	}
}

// ReadCSV parses profiles from a CSV file. The first row must be a header;
// column order is free.
func ReadCSV(path string) ([]model.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "importer: open csv")
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, eris.Wrap(err, "importer: read csv header")
	}
	cols := columnIndex(header)

	var profiles []model.Profile
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "importer: read csv row")
		}
		p, err := rowToProfile(record, cols)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// ReadXLSX parses profiles from the first sheet of an XLSX file. The first
// row must be a header.
func ReadXLSX(path string) ([]model.Profile, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "importer: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("importer: xlsx has no sheets")
	}
	sheet := f.Sheets[0]

	var cols map[string]int
	var profiles []model.Profile
	for i, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		if i == 0 {
			cols = columnIndex(cells)
			continue
		}
		p, err := rowToProfile(cells, cols)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// columnIndex maps normalized header names to positions. network_value and
// networkValue are accepted interchangeably.
func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		name = strings.ReplaceAll(name, " ", "_")
		if name == "networkvalue" {
			name = "network_value"
		}
		cols[name] = i
	}
	return cols
}

func rowToProfile(record []string, cols map[string]int) (model.Profile, error) {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	p := model.Profile{
		ID:       get("id"),
		Name:     get("name"),
		Industry: get("industry"),
		Title:    get("title"),
		Bio:      get("bio"),
		Location: get("location"),
	}
	if p.ID == "" {
		return model.Profile{}, eris.New("importer: row missing id")
	}

	if v := get("network_value"); v != "" {
		nv, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return model.Profile{}, eris.Wrapf(err, "importer: profile %s: network_value", p.ID)
		}
		p.NetworkValue = nv
	}
	if v := get("reputation"); v != "" {
		rep, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return model.Profile{}, eris.Wrapf(err, "importer: profile %s: reputation", p.ID)
		}
		p.Reputation = &rep
	}
	return p, nil
}

// Load upserts profiles one at a time through the store.
func Load(ctx context.Context, st store.Store, profiles []model.Profile) (int, error) {
	for i, p := range profiles {
		if err := st.UpsertProfile(ctx, p); err != nil {
			return i, eris.Wrapf(err, "importer: upsert profile %s", p.ID)
		}
	}
	return len(profiles), nil
}

var bulkColumns = []string{"id", "industry", "location", "profile", "created_at", "updated_at"}

// BulkLoad loads profiles via the COPY protocol. An empty profiles table
// takes the straight COPY path; an occupied table goes through the
// conflict-safe temp-table upsert. Postgres only.
func BulkLoad(ctx context.Context, pool db.Pool, profiles []model.Profile) (int64, error) {
	now := time.Now().UTC()
	rows := make([][]any, 0, len(profiles))
	for _, p := range profiles {
		profileJSON, err := json.Marshal(p)
		if err != nil {
			return 0, eris.Wrapf(err, "importer: marshal profile %s", p.ID)
		}
		rows = append(rows, []any{
			p.ID, strings.ToLower(p.Industry), strings.ToLower(p.Location), profileJSON, now, now,
		})
	}

	var occupied bool
	if err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM profiles)`).Scan(&occupied); err != nil {
		return 0, eris.Wrap(err, "importer: check profiles table")
	}

	var n int64
	var err error
	if occupied {
		n, err = db.BulkUpsert(ctx, pool, db.UpsertConfig{
			Table:        "profiles",
			Columns:      bulkColumns,
			ConflictKeys: []string{"id"},
			UpdateCols:   []string{"industry", "location", "profile", "updated_at"},
		}, rows)
	} else {
		n, err = db.CopyFrom(ctx, pool, "profiles", bulkColumns, rows)
	}
	if err != nil {
		return 0, err
	}
	zap.L().Info("bulk profile import", zap.Int64("rows", n), zap.Bool("upsert", occupied))
	return n, nil
}
