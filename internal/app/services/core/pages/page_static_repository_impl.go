package pages

import (
	"context"
	"homecare-service/internal/app/contracts"
	"homecare-service/internal/pkg/dto/responses"
)

const (
	SlugHome          = "home"
	SlugIntake        = "intake"
	SlugPrivacyPolicy = "privacy-policy"
	SlugTerms         = "terms-of-service"
)

var defaultPages = map[string]responses.PageMetadata{
	SlugHome: {
		Title:       "Home Care Services | Compassionate Care at Home",
		Description: "Personal care, companionship and skilled support so your loved ones can stay safely at home.",
	},
	"about": {
		Title:       "About Us | Home Care Services",
		Description: "Meet the caregivers and nurses behind our home care agency.",
	},
	"services": {
		Title:       "Our Services | Home Care Services",
		Description: "Personal care, respite care, dementia support and help with daily living.",
	},
	"contact": {
		Title:       "Contact Us | Home Care Services",
		Description: "Talk to a care coordinator about home care for yourself or a family member.",
	},
	"blog": {
		Title:       "Caregiving Blog | Home Care Services",
		Description: "Articles and advice for families caring for an older adult.",
	},
	SlugIntake: {
		Title:       "Home Care Assessment | Home Care Services",
		Description: "Complete our in-home assessment so we can plan the right care.",
	},
	SlugPrivacyPolicy: {
		Title:       "Privacy Policy | Home Care Services",
		Description: "How we collect, use and protect your personal and health information.",
	},
	SlugTerms: {
		Title:       "Terms of Service | Home Care Services",
		Description: "The terms that apply when you use this website and our intake form.",
	},
}

// StaticPageMetadataRepository serves the built-in page table.
type StaticPageMetadataRepository struct {
	pages map[string]responses.PageMetadata
}

func NewStaticPageMetadataRepository() contracts.PageMetadataRepository {
	return &StaticPageMetadataRepository{pages: defaultPages}
}

func (repo *StaticPageMetadataRepository) FindBySlug(ctx context.Context, slug string) (*responses.PageMetadata, error) {
	page, ok := repo.pages[slug]
	if !ok {
		return nil, nil
	}
	page.Slug = slug
	return &page, nil
}
