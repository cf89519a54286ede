// Package parser turns a job-board search-results page into structured
// postings. It is a pure transform: no network, no state.
package parser

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hirescope/hirescope/internal/model"
)

const cardSelector = ".job-search-card"

// Parse extracts job postings from a search-results HTML document, in
// document order. Cards missing a required field (id, title, company) are
// dropped individually; a malformed card never fails the whole parse.
// Optional fields default to empty strings.
func Parse(r io.Reader) ([]model.JobPosting, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse search results: %w", err)
	}

	var jobs []model.JobPosting
	doc.Find(cardSelector).Each(func(i int, s *goquery.Selection) {
		job := model.JobPosting{
			ID:              cardID(s, i),
			Title:           cleanText(s.Find(".job-search-card__title").First().Text()),
			Company:         cleanText(s.Find(".job-search-card__company-name").First().Text()),
			Location:        cleanText(s.Find(".job-search-card__location").First().Text()),
			PostedDate:      cleanText(s.Find("time").First().Text()),
			Description:     cleanText(s.Find(".job-search-card__snippet").First().Text()),
			Salary:          cleanText(s.Find(".job-search-card__salary-info").First().Text()),
			ExperienceLevel: criteriaText(s, 0),
			EmploymentType:  criteriaText(s, 1),
			WorkplaceType:   criteriaText(s, 2),
		}
		if href, ok := s.Find("a.job-search-card__title-link").First().Attr("href"); ok {
			job.ApplicationURL = strings.TrimSpace(href)
		}

		if !job.Valid() {
			return
		}
		jobs = append(jobs, job)
	})

	return jobs, nil
}

// cardID derives the posting id from the card's entity identifier, taking
// the final colon-separated segment. Cards without one get a positional
// fallback unique within this parse pass.
func cardID(s *goquery.Selection, index int) string {
	if urn, ok := s.Attr("data-entity-urn"); ok {
		parts := strings.Split(urn, ":")
		if id := strings.TrimSpace(parts[len(parts)-1]); id != "" {
			return id
		}
	}
	return fmt.Sprintf("job-%d", index)
}

func criteriaText(s *goquery.Selection, index int) string {
	return cleanText(s.Find(".description__job-criteria-text").Eq(index).Text())
}

func cleanText(value string) string {
	value = html.UnescapeString(value)
	return strings.Join(strings.Fields(value), " ")
}
