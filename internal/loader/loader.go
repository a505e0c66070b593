package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/napolitain/forge-scheduler/internal/models"
)

// ErrNoBlueprints is returned when an input holds no catalog
var ErrNoBlueprints = errors.New("no blueprints found")

// ErrUnknownFormat is returned for an unsupported file extension
var ErrUnknownFormat = errors.New("unknown catalog file format")

// ErrMalformedBlueprint is returned when blueprint text does not match
// the expected sentence
var ErrMalformedBlueprint = errors.New("malformed blueprint")

// blueprintHeader marks where each blueprint starts
var blueprintHeader = regexp.MustCompile(`Blueprint\s+(\d+):`)

// Precompiled blueprint sentence, matched against one whole blueprint.
// Whitespace between words may include line breaks, so a blueprint can be
// wrapped over several lines.
var blueprintRegex = regexp.MustCompile(
	`^Blueprint\s+(\d+):\s+` +
		`Each\s+ore\s+robot\s+costs\s+(\d+)\s+ore\.\s+` +
		`Each\s+clay\s+robot\s+costs\s+(\d+)\s+ore\.\s+` +
		`Each\s+obsidian\s+robot\s+costs\s+(\d+)\s+ore\s+and\s+(\d+)\s+clay\.\s+` +
		`Each\s+geode\s+robot\s+costs\s+(\d+)\s+ore\s+and\s+(\d+)\s+obsidian\.$`)

// CatalogFile is the JSON and YAML file layout
type CatalogFile struct {
	Catalogs []CatalogJSON `json:"catalogs" yaml:"catalogs"`
}

// CatalogJSON represents one catalog in JSON or YAML
type CatalogJSON struct {
	ID    int        `json:"id" yaml:"id"`
	Name  string     `json:"name,omitempty" yaml:"name,omitempty"`
	Units []UnitJSON `json:"units" yaml:"units"`
}

// UnitJSON represents one unit kind and its recipe
type UnitJSON struct {
	Name     string         `json:"name" yaml:"name"`
	Produces string         `json:"produces" yaml:"produces"`
	Cost     map[string]int `json:"cost,omitempty" yaml:"cost,omitempty"`
}

// LoadCatalogs loads catalogs from a file, picking the format from its
// extension: .txt blueprint text, .json or .yaml/.yml.
func LoadCatalogs(path string) ([]*models.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".txt", "":
		return ParseBlueprints(strings.NewReader(string(data)))
	case ".json":
		return DecodeJSON(data)
	case ".yaml", ".yml":
		return DecodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// ParseBlueprints reads blueprint sentences and builds one catalog each.
// Every blueprint in r must be well formed; text that does not parse is
// an error rather than being skipped.
func ParseBlueprints(r io.Reader) ([]*models.Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read blueprints: %w", err)
	}
	text := string(data)

	heads := blueprintHeader.FindAllStringSubmatchIndex(text, -1)
	if len(heads) == 0 {
		return nil, ErrNoBlueprints
	}
	if lead := strings.TrimSpace(text[:heads[0][0]]); lead != "" {
		return nil, fmt.Errorf("%w: unexpected text before blueprint %s: %q",
			ErrMalformedBlueprint, text[heads[0][2]:heads[0][3]], lead)
	}

	catalogs := make([]*models.Catalog, 0, len(heads))
	for i, h := range heads {
		end := len(text)
		if i+1 < len(heads) {
			end = heads[i+1][0]
		}
		id := text[h[2]:h[3]]

		m := blueprintRegex.FindStringSubmatch(strings.TrimSpace(text[h[0]:end]))
		if m == nil {
			return nil, fmt.Errorf("blueprint %s: %w", id, ErrMalformedBlueprint)
		}

		nums := make([]int, len(m)-1)
		for j, s := range m[1:] {
			n, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("blueprint %s: %w", id, err)
			}
			nums[j] = n
		}

		cat, err := models.DefaultCatalog(nums[0], nums[1], nums[2], nums[3], nums[4], nums[5], nums[6])
		if err != nil {
			return nil, fmt.Errorf("blueprint %d: %w", nums[0], err)
		}
		catalogs = append(catalogs, cat)
	}

	return catalogs, nil
}

// DecodeJSON parses a JSON catalog file
func DecodeJSON(data []byte) ([]*models.Catalog, error) {
	var file CatalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog json: %w", err)
	}
	return ToCatalogs(file.Catalogs)
}

// DecodeYAML parses a YAML catalog file
func DecodeYAML(data []byte) ([]*models.Catalog, error) {
	var file CatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog yaml: %w", err)
	}
	return ToCatalogs(file.Catalogs)
}

// ToCatalogs validates raw catalogs and converts them to models
func ToCatalogs(raw []CatalogJSON) ([]*models.Catalog, error) {
	if len(raw) == 0 {
		return nil, ErrNoBlueprints
	}

	catalogs := make([]*models.Catalog, 0, len(raw))
	for i, rc := range raw {
		id := rc.ID
		if id == 0 {
			id = i + 1
		}
		name := rc.Name
		if name == "" {
			name = fmt.Sprintf("Blueprint %d", id)
		}

		units := make([]models.UnitKind, 0, len(rc.Units))
		for _, ru := range rc.Units {
			produces, err := models.ParseResourceKind(ru.Produces)
			if err != nil {
				return nil, fmt.Errorf("catalog %d unit %s: %w", id, ru.Name, err)
			}

			var cost models.Ledger
			for res, amount := range ru.Cost {
				rk, err := models.ParseResourceKind(res)
				if err != nil {
					return nil, fmt.Errorf("catalog %d unit %s: %w", id, ru.Name, err)
				}
				cost[rk] = amount
			}

			units = append(units, models.UnitKind{Name: ru.Name, Produces: produces, Cost: cost})
		}

		cat, err := models.NewCatalog(id, name, units)
		if err != nil {
			return nil, fmt.Errorf("catalog %d: %w", id, err)
		}
		catalogs = append(catalogs, cat)
	}

	return catalogs, nil
}

// FromCatalog converts a model back to its file representation
func FromCatalog(c *models.Catalog) CatalogJSON {
	out := CatalogJSON{ID: c.ID, Name: c.Name, Units: make([]UnitJSON, 0, c.NumUnits())}
	for _, u := range c.Units() {
		cost := make(map[string]int)
		for _, r := range models.AllResourceKinds() {
			if u.Cost[r] != 0 {
				cost[r.String()] = u.Cost[r]
			}
		}
		out.Units = append(out.Units, UnitJSON{Name: u.Name, Produces: u.Produces.String(), Cost: cost})
	}
	return out
}
