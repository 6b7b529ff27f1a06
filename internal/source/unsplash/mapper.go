package unsplash

import "github.com/mfreeman/picbind/internal/domain"

// Unsplash API guidelines require referral parameters on attribution links.
const referralParams = "?utm_source=Picbind&utm_medium=referral"

// MapPhotos converts Unsplash DTOs to domain image records. Photos without
// a usable display URL are dropped.
func MapPhotos(photos []photo) []domain.ImageRecord {
	records := make([]domain.ImageRecord, 0, len(photos))
	for _, p := range photos {
		if p.URLs.Regular == "" {
			continue
		}
		records = append(records, domain.ImageRecord{
			Reference: p.URLs.Regular,
			Credit: &domain.Credit{
				DisplayName: p.User.Name,
				ProfileLink: p.User.Links.HTML + referralParams,
			},
		})
	}
	return records
}
