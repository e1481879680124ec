package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hnzhou16/project-cocraft-redesign/internal/aws"
	"github.com/hnzhou16/project-cocraft-redesign/internal/design"
	"github.com/hnzhou16/project-cocraft-redesign/internal/mailer"
	"github.com/hnzhou16/project-cocraft-redesign/internal/storage"
)

type generateRequest struct {
	Style string `validate:"valid_style"`
	Email string `validate:"omitempty,max=254,valid_email"`
}

type generateResponse struct {
	ID      string   `json:"id"`
	Outputs []string `json:"outputs"`
	Style   string   `json:"style"`
}

type resultsReadyEmail struct {
	Style      string
	Count      int
	ResultsURL string
}

func (app *application) generateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, app.config.maxUploadBytes)
	if err := r.ParseMultipartForm(app.config.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			app.badRequestError(w, r, fmt.Errorf("image must be smaller than %d MB", app.config.maxUploadBytes>>20))
			return
		}
		app.badRequestError(w, r, errors.New(msgRequired))
		return
	}

	image, err := readImage(r)
	if err != nil {
		app.badRequestError(w, r, err)
		return
	}

	payload := generateRequest{
		Style: strings.TrimSpace(r.FormValue("style")),
		Email: strings.TrimSpace(r.FormValue("email")),
	}
	if image == nil || payload.Style == "" {
		app.badRequestError(w, r, errors.New(msgRequired))
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestError(w, r, errors.New(validationMessage(err)))
		return
	}

	contentType, err := design.DetectImageType(image)
	if err != nil {
		app.badRequestError(w, r, err)
		return
	}

	gen, err := app.designer.Create(ctx, design.Submission{
		Image:       image,
		ContentType: contentType,
		Style:       design.Style(payload.Style),
		Email:       payload.Email,
	})
	if err != nil {
		app.generationFailedError(w, r, err)
		return
	}

	app.archiveUpload(ctx, gen, contentType, image)
	app.notifyResultsReady(ctx, gen)

	WriteJSON(w, http.StatusOK, &generateResponse{
		ID:      gen.ID,
		Outputs: gen.Outputs,
		Style:   gen.Style,
	})
}

// readImage returns nil without error when the form has no usable image part.
func readImage(r *http.Request) ([]byte, error) {
	file, _, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, errors.New(msgRequired)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return data, nil
}

func (app *application) archiveUpload(ctx context.Context, gen *storage.Generation, contentType string, image []byte) {
	if app.archiver == nil {
		return
	}

	key, err := app.archiver.Archive(ctx, aws.Upload{
		GenerationID: gen.ID,
		ContentType:  contentType,
		Extension:    design.Extension(contentType),
		Style:        gen.Style,
		Data:         image,
	})
	if err != nil {
		app.logger.Errorw("failed to archive upload", "id", gen.ID, "error", err)
		return
	}
	app.logger.Infow("upload archived", "id", gen.ID, "key", key)
}

func (app *application) notifyResultsReady(ctx context.Context, gen *storage.Generation) {
	if app.mailer == nil || gen.UserEmail == nil {
		return
	}

	status, err := app.mailer.Send(ctx, mailer.ResultsReadyTemplate, *gen.UserEmail, resultsReadyEmail{
		Style:      design.Style(gen.Style).Label(),
		Count:      len(gen.Outputs),
		ResultsURL: fmt.Sprintf("%s/results/%s", app.config.baseURL, gen.ID),
	})
	if err != nil {
		app.logger.Errorw("failed to send results email", "id", gen.ID, "error", err)
		return
	}
	app.logger.Infow("results email sent", "id", gen.ID, "status", status)
}
