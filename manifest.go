package multicolor

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/multicolor/sprite"
	"github.com/bodgit/multicolor/tile"
)

type xmlProject struct {
	XMLName  xml.Name     `xml:"Project"`
	Sprites  []xmlSprite  `xml:"Sprite"`
	Tilesets []xmlTileset `xml:"Tileset"`
}

type xmlSprite struct {
	XMLName     xml.Name `xml:"Sprite"`
	Image       string   `xml:"Image"`
	ID          string   `xml:"ID"`
	Transparent *uint8   `xml:"Transparent"`
	Color       *uint8   `xml:"Color"`
	Binary      bool     `xml:"Binary"`
	Output      string   `xml:"Output"`
}

type xmlTileset struct {
	XMLName xml.Name `xml:"Tileset"`
	Image   string   `xml:"Image"`
	ID      string   `xml:"ID"`
	Colors  string   `xml:"Colors"`
	NoAttr  bool     `xml:"NoAttr"`
	Binary  bool     `xml:"Binary"`
	Output  string   `xml:"Output"`
}

var errNoOutput = errors.New("required parameter: output")

// Paths in the manifest are relative to it and may use either separator
func resolvePath(manifest, path string) string {
	path = filepath.Clean(strings.ReplaceAll(path, "\\", string(os.PathSeparator)))
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(manifest), path)
}

// LoadManifest reads the XML project manifest in file and returns a job for
// every sprite and tileset it lists, sprites first.
func LoadManifest(file string) ([]*Job, error) {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var project xmlProject
	if err := xml.Unmarshal(b, &project); err != nil {
		return nil, err
	}

	jobs := make([]*Job, 0, len(project.Sprites)+len(project.Tilesets))

	for _, s := range project.Sprites {
		if s.Output == "" {
			return nil, fmt.Errorf("sprite %q: %w", s.Image, errNoOutput)
		}
		j := &Job{
			Mode:   ModeSprite,
			Image:  resolvePath(file, s.Image),
			ID:     s.ID,
			Binary: s.Binary,
			Sprite: sprite.Options{
				Transparent: s.Transparent,
				Sprite:      s.Color,
			},
			Output: resolvePath(file, s.Output),
		}
		if j.ID == "" {
			j.ID = "sprite"
		}
		jobs = append(jobs, j)
	}

	for _, t := range project.Tilesets {
		if t.Output == "" {
			return nil, fmt.Errorf("tileset %q: %w", t.Image, errNoOutput)
		}
		shared, err := tile.ParseShared(t.Colors)
		if err != nil {
			return nil, fmt.Errorf("tileset %q: %w", t.Image, err)
		}
		j := &Job{
			Mode:         ModeTileset,
			Image:        resolvePath(file, t.Image),
			ID:           t.ID,
			Binary:       t.Binary,
			Shared:       shared,
			NoAttributes: t.NoAttr,
			Output:       resolvePath(file, t.Output),
		}
		if j.ID == "" {
			j.ID = "tileset"
		}
		jobs = append(jobs, j)
	}

	return jobs, nil
}
