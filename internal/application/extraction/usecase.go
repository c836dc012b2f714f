// Package extraction drives the customer-onboarding flow: find the customer's
// document folder, run AI extraction over the Aadhaar card sides found there,
// and reconcile the two sides into one record ready for billing.
package extraction

import (
	"context"
	"fmt"
	"time"

	"github.com/minatoent/backoffice-api/internal/application/dto"
	"github.com/minatoent/backoffice-api/internal/application/ports"
	"github.com/minatoent/backoffice-api/internal/domain"
	"github.com/minatoent/backoffice-api/internal/domain/identity"
	"github.com/minatoent/backoffice-api/pkg/logger"
)

// CustomerFolder is one discovered customer directory, already parsed.
type CustomerFolder struct {
	FolderName    string
	FullPath      string
	PersonName    string
	AadhaarNumber string
}

// CardImages points at the card-side images found inside a customer folder.
// Either path may be empty when that side is missing.
type CardImages struct {
	Front string
	Back  string
}

// FolderBrowser is the outbound port to the customer data directory.
type FolderBrowser interface {
	Suggest(query string) ([]CustomerFolder, error)
	CardImages(folderPath string) (CardImages, error)
}

// UseCase wires folder discovery and the extraction service together.
type UseCase struct {
	browser FolderBrowser
	svc     ports.ExtractionService
	timeout time.Duration
	log     *logger.Logger
}

func NewUseCase(browser FolderBrowser, svc ports.ExtractionService, timeout time.Duration, log *logger.Logger) *UseCase {
	return &UseCase{browser: browser, svc: svc, timeout: timeout, log: log}
}

// SearchCustomers returns folder suggestions for a partial customer name.
// Queries shorter than two characters return nothing rather than the whole
// directory.
func (uc *UseCase) SearchCustomers(req dto.CustomerSearchRequest) ([]dto.CustomerSuggestion, error) {
	folders, err := uc.browser.Suggest(req.CustomerName)
	if err != nil {
		return nil, fmt.Errorf("scan customer folders: %w", err)
	}
	out := make([]dto.CustomerSuggestion, 0, len(folders))
	for _, f := range folders {
		out = append(out, dto.CustomerSuggestion{
			FolderName:    f.FolderName,
			FullPath:      f.FullPath,
			PersonName:    f.PersonName,
			AadhaarNumber: f.AadhaarNumber,
			DisplayText:   f.PersonName + " - " + f.AadhaarNumber,
		})
	}
	return out, nil
}

// ProcessFolder extracts both card sides from the selected folder and merges
// them. A single failed side degrades to a note; the call fails only when no
// side produced anything usable.
func (uc *UseCase) ProcessFolder(ctx context.Context, req dto.ProcessFolderRequest) (*dto.ExtractionResponse, error) {
	if req.FolderPath == "" {
		return nil, fmt.Errorf("%w: folder path is required", domain.ErrInvalidInput)
	}
	images, err := uc.browser.CardImages(req.FolderPath)
	if err != nil {
		return nil, err
	}
	if images.Front == "" && images.Back == "" {
		return nil, fmt.Errorf("%w: no card images in folder", domain.ErrNotFound)
	}

	var notes []string
	front := uc.extractSide(ctx, images.Front, identity.SourceFront, &notes)
	back := uc.extractSide(ctx, images.Back, identity.SourceBack, &notes)
	if front == nil && back == nil {
		return nil, fmt.Errorf("%w: both card sides failed", domain.ErrExtraction)
	}

	rec, err := identity.Merge(front, back)
	if err != nil {
		return nil, err
	}
	rec.Address = identity.CleanAddress(rec.Address)

	uc.log.Info().
		Str("folder", req.FolderPath).
		Bool("front", front != nil).
		Bool("back", back != nil).
		Int("notes", len(notes)+len(rec.Notes)).
		Msg("customer folder processed")

	return &dto.ExtractionResponse{
		Name:          rec.Name,
		AadhaarNumber: rec.AadhaarNumber,
		Address:       rec.Address,
		MobileNumber:  rec.Mobile,
		DateOfBirth:   rec.DateOfBirth,
		Gender:        rec.Gender,
		ParentName:    rec.ParentName,
		Notes:         append(notes, rec.Notes...),
	}, nil
}

// extractSide runs one bounded extraction call. Missing image or a failed
// call both come back as nil with a note appended.
func (uc *UseCase) extractSide(ctx context.Context, imagePath, side string, notes *[]string) *identity.FieldSet {
	if imagePath == "" {
		*notes = append(*notes, side+" side image not found in folder")
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	fields, err := uc.svc.ExtractCardSide(ctx, imagePath, side)
	if err != nil {
		uc.log.Warn().Err(err).Str("side", side).Str("image", imagePath).Msg("card side extraction failed")
		*notes = append(*notes, side+" side extraction failed: "+err.Error())
		return nil
	}
	return fields
}
