package design

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/hnzhou16/project-cocraft-redesign/internal/ai"
	"github.com/hnzhou16/project-cocraft-redesign/internal/storage"
)

const (
	Variations        = 3
	numInferenceSteps = 4
	maxSeed           = 1000000
)

var ErrNoOutputs = errors.New("generation service returned no designs")

type Submission struct {
	Image       []byte
	ContentType string
	Style       Style
	Email       string
}

type Designer struct {
	generator ai.Client
	storage   storage.Collection
	logger    *zap.SugaredLogger
	now       func() time.Time
	mu        sync.Mutex
	rnd       *rand.Rand
}

func NewDesigner(generator ai.Client, store storage.Collection, logger *zap.SugaredLogger) *Designer {
	return &Designer{
		generator: generator,
		storage:   store,
		logger:    logger,
		now:       time.Now,
		rnd:       rand.New(rand.NewSource(time.Now().UTC().UnixNano())),
	}
}

func Prompt(style Style) string {
	return fmt.Sprintf("interior design, %s style, photorealistic, professional, high quality, modern furniture, beautiful lighting", style)
}

func (d *Designer) seed() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rnd.Intn(maxSeed)
}

// Create runs Variations sequential predictions for the submission and
// persists the record when at least one produced an image. Attempts that
// come back without output are skipped; an error from the generator aborts
// the whole submission.
func (d *Designer) Create(ctx context.Context, sub Submission) (*storage.Generation, error) {
	inputURL := EncodeDataURI(sub.ContentType, sub.Image)
	prompt := Prompt(sub.Style)

	outputs := make([]string, 0, Variations)
	for i := 0; i < Variations; i++ {
		seed := d.seed()
		urls, err := d.generator.GenerateImage(ctx, ai.ImageInput{
			Prompt:            prompt,
			Image:             inputURL,
			NumOutputs:        1,
			NumInferenceSteps: numInferenceSteps,
			GuidanceScale:     0,
			Seed:              seed,
		})
		if err != nil {
			return nil, fmt.Errorf("variation %d: %w", i+1, err)
		}

		urls = lo.Compact(urls)
		if len(urls) == 0 {
			d.logger.Warnw("variation returned no output", "variation", i+1, "seed", seed, "style", sub.Style)
			continue
		}
		outputs = append(outputs, urls[0])
	}

	if len(outputs) == 0 {
		return nil, ErrNoOutputs
	}

	gen := &storage.Generation{
		ID:        uuid.New().String(),
		UserEmail: lo.Ternary(sub.Email != "", &sub.Email, nil),
		InputURL:  inputURL,
		Outputs:   outputs,
		Style:     string(sub.Style),
		CreatedAt: d.now().UTC().Truncate(time.Millisecond),
	}

	if err := d.storage.Generation.Create(ctx, gen); err != nil {
		return nil, err
	}

	d.logger.Infow("generation created", "id", gen.ID, "style", gen.Style, "outputs", len(gen.Outputs))
	return gen, nil
}
