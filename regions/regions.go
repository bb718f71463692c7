package regions

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
)

// Region is one continent row from a regions CSV: its territory count, map
// colour, and the reinforcement bonus for holding all of it.
type Region struct {
	Name             string
	TerritoriesCount int
	Colour           string
	Reinforcements   int
}

// PerTerritory is the reinforcement bonus spread over the region's
// territories, the efficiency measure the report ranks by.
func (r Region) PerTerritory() float64 {
	return float64(r.Reinforcements) / float64(r.TerritoriesCount)
}

// Load reads regions from CSV data with a header row naming at least
// region, territories_count, colour and reinforcements.
func Load(r io.Reader) ([]Region, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read regions header: %w", err)
	}

	column := make(map[string]int, len(header))
	for i, name := range header {
		column[name] = i
	}
	for _, name := range []string{"region", "territories_count", "colour", "reinforcements"} {
		if _, ok := column[name]; !ok {
			return nil, fmt.Errorf("regions CSV is missing column %q", name)
		}
	}

	var regions []Region
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read regions row: %w", err)
		}

		territories, err := strconv.Atoi(row[column["territories_count"]])
		if err != nil {
			return nil, fmt.Errorf("bad territories_count for region %q: %w", row[column["region"]], err)
		}
		if territories < 1 {
			return nil, fmt.Errorf("region %q must have at least one territory, got %d",
				row[column["region"]], territories)
		}
		reinforcements, err := strconv.Atoi(row[column["reinforcements"]])
		if err != nil {
			return nil, fmt.Errorf("bad reinforcements for region %q: %w", row[column["region"]], err)
		}

		regions = append(regions, Region{
			Name:             row[column["region"]],
			TerritoriesCount: territories,
			Colour:           row[column["colour"]],
			Reinforcements:   reinforcements,
		})
	}
	return regions, nil
}

func LoadFile(path string) ([]Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open regions file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// SortByEfficiency orders regions by reinforcements per territory, best first.
func SortByEfficiency(regions []Region) {
	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].PerTerritory() > regions[j].PerTerritory()
	})
}

// WriteReport emits the ranked efficiency report as CSV.
func WriteReport(w io.Writer, regions []Region) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"region", "territories_count", "colour", "reinforcements", "reinforcements_per_territory"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for _, region := range regions {
		row := []string{
			region.Name,
			strconv.Itoa(region.TerritoriesCount),
			region.Colour,
			strconv.Itoa(region.Reinforcements),
			fmt.Sprintf("%.2f", region.PerTerritory()),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func WriteReportFile(path string, regions []Region) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()
	return WriteReport(f, regions)
}
