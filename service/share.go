package service

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"salary-compass/domain"
)

const skillsDelimiter = ","

// Share query parameter names.
const (
	paramExperience = "exp"
	paramYears      = "years"
	paramTitle      = "title"
	paramIndustry   = "industry"
	paramLocation   = "location"
	paramType       = "type"
	paramSkills     = "skills"
	paramGender     = "gender"
	paramEthnicity  = "ethnicity"
)

// ShareLinks is a share URL plus ready-made social intent links for it.
type ShareLinks struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Twitter  string `json:"twitter"`
	LinkedIn string `json:"linkedin"`
	Facebook string `json:"facebook"`
	WhatsApp string `json:"whatsapp"`
}

// ShareService encodes profiles into share URLs. Receivers decode the
// profile and re-run the estimator; results are never transmitted.
type ShareService struct {
	baseURL string
}

func NewShareService(baseURL string) *ShareService {
	return &ShareService{baseURL: strings.TrimRight(baseURL, "/")}
}

// Link builds a share URL under /share/{id} for profile.
func (s *ShareService) Link(profile domain.UserProfile) (string, error) {
	return s.link(uuid.NewString(), profile)
}

func (s *ShareService) link(id string, profile domain.UserProfile) (string, error) {
	u, err := url.Parse(s.baseURL + "/share/" + url.PathEscape(id))
	if err != nil {
		return "", fmt.Errorf("parsing share base url: %w", err)
	}
	u.RawQuery = EncodeProfile(profile).Encode()
	return u.String(), nil
}

// Links builds the share URL and its social variants. estimate is only
// used for the post text.
func (s *ShareService) Links(profile domain.UserProfile, estimate int) (ShareLinks, error) {
	id := uuid.NewString()
	shareURL, err := s.link(id, profile)
	if err != nil {
		return ShareLinks{}, err
	}
	text := fmt.Sprintf("My estimated content marketing salary is %s. Check yours with Salary Compass!", FormatCurrency(estimate))
	escaped := url.QueryEscape(shareURL)

	return ShareLinks{
		ID:       id,
		URL:      shareURL,
		Twitter:  "https://twitter.com/intent/tweet?url=" + escaped + "&text=" + url.QueryEscape(text),
		LinkedIn: "https://www.linkedin.com/sharing/share-offsite/?url=" + escaped + "&title=" + url.QueryEscape(text),
		Facebook: "https://www.facebook.com/sharer/sharer.php?u=" + escaped + "&quote=" + url.QueryEscape(text),
		WhatsApp: "https://wa.me/?text=" + url.QueryEscape(text+" "+shareURL),
	}, nil
}

// EncodeProfile serializes the profile fields needed to rebuild an
// equivalent profile, one parameter per field.
func EncodeProfile(p domain.UserProfile) url.Values {
	q := url.Values{}
	q.Set(paramExperience, p.ExperienceLevel)
	q.Set(paramYears, strconv.Itoa(p.ExperienceYears))
	q.Set(paramTitle, p.JobTitle)
	q.Set(paramIndustry, p.Industry)
	q.Set(paramLocation, p.Location)
	q.Set(paramType, p.EmploymentType)
	q.Set(paramSkills, strings.Join(p.SkillSet(), skillsDelimiter))
	if p.Gender != "" {
		q.Set(paramGender, p.Gender)
	}
	if p.Ethnicity != "" {
		q.Set(paramEthnicity, p.Ethnicity)
	}
	return q
}

// DecodeProfile rebuilds a profile from share query parameters. It returns
// domain.ErrInvalidShareURL when a required parameter is missing.
func DecodeProfile(q url.Values) (domain.UserProfile, error) {
	required := []string{paramExperience, paramTitle, paramIndustry, paramLocation, paramType, paramSkills}
	var missing []string
	for _, key := range required {
		if q.Get(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return domain.UserProfile{}, fmt.Errorf("%w: %s", domain.ErrInvalidShareURL, strings.Join(missing, ", "))
	}

	years, err := strconv.Atoi(q.Get(paramYears))
	if err != nil {
		years = 0
	}

	return domain.UserProfile{
		ExperienceLevel: q.Get(paramExperience),
		ExperienceYears: years,
		JobTitle:        q.Get(paramTitle),
		Industry:        q.Get(paramIndustry),
		Location:        q.Get(paramLocation),
		EmploymentType:  q.Get(paramType),
		Skills:          strings.Split(q.Get(paramSkills), skillsDelimiter),
		Gender:          q.Get(paramGender),
		Ethnicity:       q.Get(paramEthnicity),
	}, nil
}
