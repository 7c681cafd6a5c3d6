package skinanalysis

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"time"

	"skincare-backend/internal/catalog"
	"skincare-backend/internal/shared/storage/object"
	"skincare-backend/internal/vision"
)

type fakeStore struct {
	mu       sync.Mutex
	uploads  int
	lastName string
	lastSize int
	err      error
	block    bool
}

func (s *fakeStore) Upload(ctx context.Context, callerID, fileName string, r io.Reader) (object.Object, error) {
	if s.block {
		<-ctx.Done()
		return object.Object{}, ctx.Err()
	}
	if s.err != nil {
		return object.Object{}, s.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return object.Object{}, err
	}
	s.mu.Lock()
	s.uploads++
	s.lastName = fileName
	s.lastSize = len(data)
	s.mu.Unlock()
	return object.Object{
		Key:       "caller/" + fileName,
		URL:       "https://cdn.example/caller/" + fileName,
		SizeBytes: int64(len(data)),
	}, nil
}

type fakeVision struct {
	doc   vision.Document
	err   error
	block bool
	calls int
}

func (v *fakeVision) AnalyzeFace(ctx context.Context, image []byte) (vision.Document, error) {
	v.calls++
	if v.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if v.err != nil {
		return nil, v.err
	}
	return v.doc, nil
}

type failingSkinTypes struct{ err error }

func (f failingSkinTypes) FindByNameContains(context.Context, string) (catalog.SkinType, error) {
	return catalog.SkinType{}, f.err
}
func (f failingSkinTypes) Any(context.Context) (catalog.SkinType, error) {
	return catalog.SkinType{}, f.err
}
func (f failingSkinTypes) IsEmpty(context.Context) (bool, error) { return false, f.err }
func (f failingSkinTypes) List(context.Context) ([]catalog.SkinType, error) {
	return nil, f.err
}

type failingProducts struct{}

func (failingProducts) FindBySkinType(context.Context, string, int) ([]catalog.Product, error) {
	return nil, errors.New("catalog connection reset")
}

type oversizedProducts struct{ n int }

func (o oversizedProducts) FindBySkinType(context.Context, string, int) ([]catalog.Product, error) {
	out := make([]catalog.Product, o.n)
	for i := range out {
		out[i] = catalog.Product{ID: string(rune('a' + i)), Name: "p"}
	}
	return out, nil
}

// skinDoc builds a vision document in the Face++ detect shape.
func skinDoc(acne, wrinkle, darkCircle, spot any) vision.Document {
	return vision.Document{
		"faces": []any{
			map[string]any{
				"attributes": map[string]any{
					"skinstatus": map[string]any{
						"acne":        acne,
						"wrinkle":     wrinkle,
						"dark_circle": darkCircle,
						"spot":        spot,
					},
				},
			},
		},
	}
}

func num(s string) json.Number { return json.Number(s) }

func newSeededCatalog() *catalog.MemoryRepo {
	repo := catalog.NewMemoryRepo()
	repo.AddSkinTypes(
		catalog.SkinType{ID: "skin-combination", Name: "Combination"},
		catalog.SkinType{ID: "skin-dry", Name: "Dry"},
		catalog.SkinType{ID: "skin-oily", Name: "Oily"},
	)
	acne := catalog.Category{ID: "cat-acne", Name: "Acne Treatment"}
	serum := catalog.Category{ID: "cat-serum", Name: "Anti-Aging Serum"}
	cleanser := catalog.Category{ID: "cat-cleanser", Name: "Cleanser"}
	repo.AddProduct(catalog.Product{
		ID: "prod-1", Name: "BHA Gel", Price: 12, Category: acne,
		Images: []catalog.ProductImage{{URL: "https://img/1-side", SortOrder: 0}, {URL: "https://img/1", IsThumbnail: true, SortOrder: 1}},
	}, "skin-oily")
	repo.AddProduct(catalog.Product{ID: "prod-2", Name: "Retinol", Price: 30, Category: serum}, "skin-oily", "skin-dry")
	repo.AddProduct(catalog.Product{ID: "prod-3", Name: "Foam", Price: 8, Category: cleanser}, "skin-oily")
	return repo
}

func newTestService(store *fakeStore, vc *fakeVision, repo *catalog.MemoryRepo) *Service {
	fixed := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	return &Service{
		Store:         store,
		Vision:        vc,
		Classifier:    Classifier{SkinTypes: repo},
		Matcher:       Matcher{Products: repo},
		UploadTimeout: time.Second,
		VisionTimeout: time.Second,
		now:           func() time.Time { return fixed },
		newID:         func() string { return "analysis-test" },
	}
}
