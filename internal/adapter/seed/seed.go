// Package seed loads the startup catalog and site content.
package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/niksmo/bant-confirm/internal/core/domain"
	"github.com/niksmo/bant-confirm/internal/core/port"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var embedded []byte

var ErrEmptySeed = errors.New("seed has no products")

type Content struct {
	Products     []domain.Product
	Banners      []domain.Banner
	Vendors      []domain.Vendor
	FAQs         []domain.FAQ
	Testimonials []domain.Testimonial
}

type document struct {
	Products []struct {
		Name     string   `yaml:"name"`
		Category string   `yaml:"category"`
		Vendor   string   `yaml:"vendor"`
		Price    string   `yaml:"price"`
		Features []string `yaml:"features"`
		ImageURL string   `yaml:"image_url"`
	} `yaml:"products"`
	Banners []struct {
		ImageURL string `yaml:"image_url"`
		Title    string `yaml:"title"`
		Subtitle string `yaml:"subtitle"`
	} `yaml:"banners"`
	Vendors []struct {
		LogoURL string `yaml:"logo_url"`
	} `yaml:"vendors"`
	FAQs []struct {
		Question string `yaml:"question"`
		Answer   string `yaml:"answer"`
	} `yaml:"faqs"`
	Testimonials []struct {
		Quote    string `yaml:"quote"`
		Author   string `yaml:"author"`
		Company  string `yaml:"company"`
		Location string `yaml:"location"`
	} `yaml:"testimonials"`
}

// Load reads the seed at path, or the built-in one when path is empty.
// Every entity gets a fresh id from ids.
func Load(path string, ids port.IDGenerator) (Content, error) {
	const op = "seed.Load"

	data := embedded
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return Content{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	c, err := Parse(data, ids)
	if err != nil {
		return Content{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func Parse(data []byte, ids port.IDGenerator) (Content, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Content{}, err
	}
	if len(doc.Products) == 0 {
		return Content{}, ErrEmptySeed
	}

	var c Content
	for _, p := range doc.Products {
		c.Products = append(c.Products, domain.Product{
			ID:       ids.NextID(),
			Name:     p.Name,
			Category: p.Category,
			Vendor:   p.Vendor,
			Price:    p.Price,
			Features: domain.CleanFeatures(p.Features),
			ImageURL: p.ImageURL,
		})
	}
	for _, b := range doc.Banners {
		c.Banners = append(c.Banners, domain.Banner{
			ID: ids.NextID(), ImageURL: b.ImageURL, Title: b.Title, Subtitle: b.Subtitle,
		})
	}
	for _, v := range doc.Vendors {
		c.Vendors = append(c.Vendors, domain.Vendor{ID: ids.NextID(), LogoURL: v.LogoURL})
	}
	for _, f := range doc.FAQs {
		c.FAQs = append(c.FAQs, domain.FAQ(f))
	}
	for _, t := range doc.Testimonials {
		c.Testimonials = append(c.Testimonials, domain.Testimonial(t))
	}
	return c, nil
}
