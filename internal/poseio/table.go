package poseio

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"posekit/internal/pose"
)

// loadTable reads a delimited per-frame coordinate table: one header row, an
// optional leading "frame" column, then x/y/z column triplets per keypoint.
func loadTable(path string) (*pose.Tensor, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pose table: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse pose table %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("pose table %s has no frame rows", path)
	}

	header := rows[0]
	skip := 0
	if strings.EqualFold(strings.TrimSpace(header[0]), "frame") {
		skip = 1
	}
	coordCols := len(header) - skip
	if coordCols <= 0 || coordCols%pose.Coords != 0 {
		return nil, fmt.Errorf("pose table %s: %d coordinate columns is not a multiple of %d", path, coordCols, pose.Coords)
	}

	keypoints := coordCols / pose.Coords
	t := pose.NewTensor(len(rows)-1, keypoints)
	for i, row := range rows[1:] {
		for c := 0; c < coordCols; c++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[skip+c]), 64)
			if err != nil {
				return nil, fmt.Errorf("pose table %s: frame %d column %q: %w", path, i, header[skip+c], err)
			}
			t.Data[i*coordCols+c] = v
		}
	}
	return t, nil
}
