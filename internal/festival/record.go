package festival

import (
	"fmt"
	"strings"

	"github.com/kingrea/patro/internal/bs"
)

// DefaultImage is the asset shown when a festival has no usable image.
const DefaultImage = "festival-default.svg"

// Record describes one festival observance. The tags follow the shape the
// festival data files use.
type Record struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	LocalName   string `yaml:"name_np,omitempty" json:"name_np,omitempty"`
	Description string `yaml:"desc,omitempty" json:"desc,omitempty"`
	Image       string `yaml:"image,omitempty" json:"image,omitempty"`
	ImageURL    string `yaml:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Approximate bool   `yaml:"approx,omitempty" json:"approx,omitempty"`
}

func (r Record) validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required for %s", r.ID)
	}
	return nil
}

// LocalImage is the local asset name: Image when set, else "<id>.svg".
func (r Record) LocalImage() string {
	if img := strings.TrimSpace(r.Image); img != "" {
		return img
	}
	if id := strings.TrimSpace(r.ID); id != "" {
		return id + ".svg"
	}
	return ""
}

// ImageSources lists the image candidates a renderer should try in order:
// the local asset, then the remote URL, then DefaultImage. With
// preferRemote the remote URL moves to the front. Duplicates are dropped.
func (r Record) ImageSources(preferRemote bool) []string {
	local := r.LocalImage()
	remote := strings.TrimSpace(r.ImageURL)
	ordered := []string{local, remote}
	if preferRemote {
		ordered = []string{remote, local}
	}
	ordered = append(ordered, DefaultImage)

	seen := make(map[string]struct{}, len(ordered))
	out := make([]string, 0, len(ordered))
	for _, src := range ordered {
		if src == "" {
			continue
		}
		if _, ok := seen[src]; ok {
			continue
		}
		seen[src] = struct{}{}
		out = append(out, src)
	}
	return out
}

// MonthImage names the banner asset for a BS month, e.g.
// "shrawan-month.svg".
func MonthImage(month int) string {
	name := bs.MonthName(month)
	if name == "" {
		return DefaultImage
	}
	return strings.ToLower(name) + "-month.svg"
}
