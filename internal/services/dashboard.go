package services

import (
	"context"
	"errors"
	"log"
	"slices"

	"alfredoptarigan/compliance-dashboard/internal/models"
)

type DashboardService interface {
	PairsSource() string
	Sources() []string
	PairLabels(ctx context.Context) ([]string, error)
	Select(ctx context.Context, source string, index int) (*Selection, error)
	View(ctx context.Context, source string, index int) (*models.DashboardView, error)
	CheckSource(name string) error
	ValidateSource(name string, content []byte) error
	Warm(ctx context.Context, name string) error
	Reload(name string)
	ReloadAll()
}

type dashboardService struct {
	pairsSource   string
	resultSources []string
	pairs         *Cache[[]models.DocumentPair]
	results       *Cache[*models.ResultSource]
}

// NewDashboardService wires a loader to per-kind caches. resolver may be nil
// when document pairs always carry inline text.
func NewDashboardService(
	loader SourceLoader,
	resolver DocumentResolver,
	pairsSource string,
	resultSources []string,
) DashboardService {
	d := &dashboardService{
		pairsSource:   pairsSource,
		resultSources: slices.Clone(resultSources),
	}

	d.pairs = NewCache(func(ctx context.Context, name string) ([]models.DocumentPair, error) {
		data, err := loader.Load(ctx, name)
		if err != nil {
			return nil, err
		}
		pairs, err := DecodeDocumentPairs(data)
		if err != nil {
			return nil, newSourceError(name, ErrMalformedSource, err)
		}
		if resolver != nil {
			pairs = resolver.ResolvePairs(pairs)
		}
		log.Printf("✅ Loaded %d document pairs from %q\n", len(pairs), name)
		return pairs, nil
	})

	d.results = NewCache(func(ctx context.Context, name string) (*models.ResultSource, error) {
		data, err := loader.Load(ctx, name)
		if err != nil {
			return nil, err
		}
		source, err := DecodeResultSource(data)
		if err != nil {
			return nil, newSourceError(name, ErrMalformedSource, err)
		}
		log.Printf("✅ Loaded %d result sets from %q\n", len(source.Sets), name)
		return source, nil
	})

	return d
}

func (d *dashboardService) PairsSource() string {
	return d.pairsSource
}

func (d *dashboardService) Sources() []string {
	return slices.Clone(d.resultSources)
}

func (d *dashboardService) PairLabels(ctx context.Context) ([]string, error) {
	pairs, err := d.pairs.Get(ctx, d.pairsSource)
	if err != nil {
		return nil, err
	}
	return ListPairLabels(pairs), nil
}

// Select resolves a 0-based pair index against the chosen result source.
func (d *dashboardService) Select(ctx context.Context, source string, index int) (*Selection, error) {
	if source == d.pairsSource || !slices.Contains(d.resultSources, source) {
		return nil, newSourceError(source, ErrSourceNotFound, errors.New("source is not a result source"))
	}

	pairs, err := d.pairs.Get(ctx, d.pairsSource)
	if err != nil {
		return nil, err
	}

	results, err := d.results.Get(ctx, source)
	if err != nil {
		return nil, err
	}

	return SelectPair(index, pairs, results.Sets, results.Metrics)
}

func (d *dashboardService) View(ctx context.Context, source string, index int) (*models.DashboardView, error) {
	selection, err := d.Select(ctx, source, index)
	if err != nil {
		return nil, err
	}

	labels, err := d.PairLabels(ctx)
	if err != nil {
		return nil, err
	}

	return BuildDashboardView(source, selection, labels), nil
}

// CheckSource reports ErrSourceNotFound for names outside the configured set.
func (d *dashboardService) CheckSource(name string) error {
	if name == d.pairsSource || slices.Contains(d.resultSources, name) {
		return nil
	}
	return newSourceError(name, ErrSourceNotFound, errors.New("source is not configured"))
}

// ValidateSource checks that content decodes as the kind of data the named
// source holds.
func (d *dashboardService) ValidateSource(name string, content []byte) error {
	if err := d.CheckSource(name); err != nil {
		return err
	}

	var err error
	if name == d.pairsSource {
		_, err = DecodeDocumentPairs(content)
	} else {
		_, err = DecodeResultSource(content)
	}
	if err != nil {
		return newSourceError(name, ErrMalformedSource, err)
	}
	return nil
}

// Warm loads name into its cache without selecting anything from it.
func (d *dashboardService) Warm(ctx context.Context, name string) error {
	if err := d.CheckSource(name); err != nil {
		return err
	}
	if name == d.pairsSource {
		_, err := d.pairs.Get(ctx, name)
		return err
	}
	_, err := d.results.Get(ctx, name)
	return err
}

// Reload drops the cached copy of name so the next access reads it again.
func (d *dashboardService) Reload(name string) {
	d.pairs.Invalidate(name)
	d.results.Invalidate(name)
	log.Printf("🔄 Source %q invalidated\n", name)
}

// ReloadAll drops every cached source.
func (d *dashboardService) ReloadAll() {
	d.pairs.Reset()
	d.results.Reset()
	log.Println("🔄 All sources invalidated")
}
