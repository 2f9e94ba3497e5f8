package extractor

import (
	"strings"

	"go.uber.org/zap"

	"github.com/user/salesbot-service/internal/domain"
)

// FieldReport names the locators that produced a field. Defaulted is set
// when no candidate was accepted and the field kept its default.
type FieldReport struct {
	Field     string   `json:"field"`
	Sources   []string `json:"sources"`
	Defaulted bool     `json:"defaulted"`
}

// Report describes how each field of a record was resolved.
type Report struct {
	Fields []FieldReport `json:"fields"`
}

// Defaulted returns the names of the fields that fell back to defaults.
func (r Report) Defaulted() []string {
	var out []string
	for _, f := range r.Fields {
		if f.Defaulted {
			out = append(out, f.Field)
		}
	}
	return out
}

func (r *Report) add(field string, sources []string) {
	r.Fields = append(r.Fields, FieldReport{
		Field:     field,
		Sources:   sources,
		Defaulted: len(sources) == 0,
	})
}

// Extractor turns a parsed landing page into product facts.
type Extractor struct {
	title        Field
	description  Field
	benefits     Field
	testimonials Field
	bonus        Field
	guarantee    Field
	cta          Field
	price        *PriceResolver

	logger *zap.Logger
}

// New builds the field cascades. Every selector is validated here.
func New(opts Options, logger *zap.Logger) (*Extractor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	e := &Extractor{logger: logger}

	var err error
	if e.title, err = titleField(opts); err != nil {
		return nil, err
	}
	if e.description, err = descriptionField(opts); err != nil {
		return nil, err
	}
	if e.benefits, err = benefitsField(opts); err != nil {
		return nil, err
	}
	if e.testimonials, err = testimonialsField(opts); err != nil {
		return nil, err
	}
	if e.bonus, err = bonusField(); err != nil {
		return nil, err
	}
	if e.guarantee, err = guaranteeField(); err != nil {
		return nil, err
	}
	if e.cta, err = ctaField(); err != nil {
		return nil, err
	}
	if e.price, err = NewPriceResolver(); err != nil {
		return nil, err
	}

	return e, nil
}

// Extract runs every cascade over doc. Missing fields keep their defaults,
// so the returned record is always complete.
func (e *Extractor) Extract(doc *Document) (domain.ProductFacts, Report) {
	facts := domain.DefaultFacts(doc.URL)
	var report Report

	if v, src, ok := e.title.First(doc); ok {
		facts.Title = v
		report.add(e.title.Name, []string{src})
	} else {
		report.add(e.title.Name, nil)
	}

	if v, src, ok := e.description.First(doc); ok {
		facts.Description = domain.TruncateRunes(v, domain.MaxDescriptionRunes)
		report.add(e.description.Name, []string{src})
	} else {
		report.add(e.description.Name, nil)
	}

	price, priceSources := e.price.Resolve(doc)
	facts.Price = price
	report.add("price", priceSources)

	benefits, sources := e.benefits.Collect(doc)
	if len(benefits) > 0 {
		facts.Benefits = benefits
	}
	report.add(e.benefits.Name, sources)

	facts.Testimonials, sources = e.testimonials.Collect(doc)
	report.add(e.testimonials.Name, sources)

	facts.Bonus, sources = e.bonus.Collect(doc)
	report.add(e.bonus.Name, sources)

	var guarantee []string
	guarantee, sources = e.guarantee.Collect(doc)
	if len(guarantee) > 0 {
		facts.Guarantee = guarantee[0]
	}
	report.add(e.guarantee.Name, sources)

	if v, src, ok := e.cta.First(doc); ok {
		facts.CTA = v
		report.add(e.cta.Name, []string{src})
	} else {
		report.add(e.cta.Name, nil)
	}

	e.logger.Debug("Extraction finished",
		zap.String("url", doc.URL),
		zap.String("title", facts.Title),
		zap.String("price", facts.Price.Display()),
		zap.Int("benefits", len(facts.Benefits)),
		zap.Int("testimonials", len(facts.Testimonials)),
		zap.String("defaulted", strings.Join(report.Defaulted(), ",")),
	)

	return facts, report
}

// ExtractHTML parses rawHTML and extracts it in one step.
func (e *Extractor) ExtractHTML(pageURL, rawHTML string) (domain.ProductFacts, Report, error) {
	doc, err := NewDocument(pageURL, rawHTML)
	if err != nil {
		return domain.DefaultFacts(pageURL), Report{}, err
	}
	facts, report := e.Extract(doc)
	return facts, report, nil
}
