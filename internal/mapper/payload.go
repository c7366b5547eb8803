// Package mapper converts loosely shaped external payloads (request bodies,
// remote matching previews) into the fixed domain shapes consumed by the
// scorer and the repositories.
package mapper

import (
	"errors"
	"strings"

	"talent-match/internal/domain/cv"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/requirement"

	"github.com/tidwall/gjson"
)

var ErrInvalidPayload = errors.New("invalid payload")

func parse(b []byte) (gjson.Result, error) {
	if len(b) == 0 || !gjson.ValidBytes(b) {
		return gjson.Result{}, ErrInvalidPayload
	}
	root := gjson.ParseBytes(b)
	if !root.IsObject() {
		return gjson.Result{}, ErrInvalidPayload
	}
	return root, nil
}

// first returns the first non-empty string among the given paths.
func first(root gjson.Result, paths ...string) string {
	for _, p := range paths {
		r := root.Get(p)
		if !r.Exists() || r.IsObject() || r.IsArray() {
			continue
		}
		if s := strings.TrimSpace(r.String()); s != "" {
			return s
		}
	}
	return ""
}

// stringList accepts either a JSON array of strings, an array of objects with
// a "name" field, or a single comma separated string.
func stringList(r gjson.Result) []string {
	if !r.Exists() {
		return nil
	}
	if r.Type == gjson.String {
		return SplitList(r.String())
	}
	if !r.IsArray() {
		return nil
	}
	out := make([]string, 0)
	r.ForEach(func(_, v gjson.Result) bool {
		var s string
		if v.IsObject() {
			s = v.Get("name").String()
		} else if v.Type == gjson.String {
			s = v.String()
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
		return true
	})
	return out
}

func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func JobFromJSON(b []byte) (job.Job, error) {
	root, err := parse(b)
	if err != nil {
		return job.Job{}, err
	}

	j := job.Job{
		Title:          first(root, "title"),
		CompanyName:    first(root, "companyName", "company_name", "company"),
		Location:       jobLocation(root),
		Seniority:      first(root, "seniority", "experienceLevel", "experience_level"),
		EmploymentType: stringList(root.Get("employmentType")),
		Skills:         jobSkills(root.Get("skills")),
		Tags:           stringList(root.Get("tags")),
		Description:    first(root, "description"),
		Status:         strings.ToLower(first(root, "status")),
	}
	return j, nil
}

func jobLocation(root gjson.Result) job.Location {
	loc := root.Get("location")
	if loc.IsObject() {
		return job.Location{
			City:       strings.TrimSpace(loc.Get("city").String()),
			State:      strings.TrimSpace(loc.Get("state").String()),
			Country:    strings.TrimSpace(loc.Get("country").String()),
			RemoteType: strings.TrimSpace(loc.Get("remoteType").String()),
		}
	}
	if s := first(root, "location", "companyLocation"); s != "" {
		return job.Location{City: s}
	}
	return job.Location{}
}

func jobSkills(r gjson.Result) []job.Skill {
	if !r.Exists() {
		return nil
	}
	if r.Type == gjson.String {
		names := SplitList(r.String())
		out := make([]job.Skill, 0, len(names))
		for _, n := range names {
			out = append(out, job.Skill{Name: n})
		}
		return out
	}
	if !r.IsArray() {
		return nil
	}
	out := make([]job.Skill, 0)
	r.ForEach(func(_, v gjson.Result) bool {
		var s job.Skill
		switch {
		case v.IsObject():
			s = job.Skill{Name: strings.TrimSpace(v.Get("name").String()), Level: strings.TrimSpace(v.Get("level").String())}
		case v.Type == gjson.String:
			s = job.Skill{Name: strings.TrimSpace(v.String())}
		}
		if s.Name != "" {
			out = append(out, s)
		}
		return true
	})
	return out
}

func CVFromJSON(b []byte) (cv.CV, error) {
	root, err := parse(b)
	if err != nil {
		return cv.CV{}, err
	}

	c := cv.CV{
		Fullname:        first(root, "fullname", "name"),
		Headline:        first(root, "headline"),
		TargetRole:      first(root, "targetRole", "target_role", "title"),
		Summary:         first(root, "summary"),
		Location:        cvLocation(root.Get("location")),
		Skills:          cvSkills(root.Get("skills")),
		ExperienceLevel: first(root, "experienceLevel", "experience_level", "seniority"),
		EmploymentType:  stringList(root.Get("employmentType")),
		Availability:    first(root, "availability"),
	}

	for _, p := range []string{"experienceYears", "experience_years", "yearsOfExperience"} {
		if r := root.Get(p); r.Type == gjson.Number {
			y := int(r.Int())
			if y < 0 {
				y = 0
			}
			c.ExperienceYears = &y
			break
		}
	}
	if exps := root.Get("experiences"); exps.IsArray() {
		c.ExperienceCount = len(exps.Array())
	}
	return c, nil
}

func cvLocation(r gjson.Result) cv.Location {
	if r.IsObject() {
		return cv.Location{
			City:    strings.TrimSpace(r.Get("city").String()),
			State:   strings.TrimSpace(r.Get("state").String()),
			Country: strings.TrimSpace(r.Get("country").String()),
		}
	}
	if r.Type == gjson.String {
		return cv.Location{City: strings.TrimSpace(r.String())}
	}
	return cv.Location{}
}

func cvSkills(r gjson.Result) []cv.Skill {
	if !r.Exists() {
		return nil
	}
	if r.Type == gjson.String {
		names := SplitList(r.String())
		out := make([]cv.Skill, 0, len(names))
		for _, n := range names {
			out = append(out, cv.Skill{Name: n})
		}
		return out
	}
	if !r.IsArray() {
		return nil
	}
	out := make([]cv.Skill, 0)
	r.ForEach(func(_, v gjson.Result) bool {
		var s cv.Skill
		switch {
		case v.IsObject():
			s = cv.Skill{
				Name:     strings.TrimSpace(v.Get("name").String()),
				Level:    strings.TrimSpace(v.Get("level").String()),
				Category: strings.TrimSpace(v.Get("category").String()),
				Years:    int(v.Get("years").Int()),
			}
		case v.Type == gjson.String:
			s = cv.Skill{Name: strings.TrimSpace(v.String())}
		}
		if s.Name != "" {
			out = append(out, s)
		}
		return true
	})
	return out
}

func RequirementFromJSON(b []byte) (requirement.Requirement, error) {
	root, err := parse(b)
	if err != nil {
		return requirement.Requirement{}, err
	}

	location := first(root, "location")
	if loc := root.Get("location"); loc.IsObject() {
		location = cvLocation(loc).Display()
	}

	criteria := stringList(root.Get("criteriaList"))
	if criteria == nil {
		criteria = stringList(root.Get("criteria"))
	}

	return requirement.Requirement{
		Title:           first(root, "title"),
		Skills:          stringList(root.Get("skills")),
		ExperienceLevel: first(root, "experienceLevel", "experience_level", "seniority"),
		Location:        location,
		OpenPositions:   int(root.Get("openPositions").Int()),
		Criteria:        criteria,
	}, nil
}
