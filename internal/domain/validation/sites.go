package validation

import (
	"net/url"
	"regexp"
	"strings"
)

var siteIDRE = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,31}$`)

func ValidateSiteID(field string, value string) []string {
	var errs []string
	value = strings.TrimSpace(value)
	if value == "" {
		errs = append(errs, field+" cannot be empty")
		return errs
	}
	if !siteIDRE.MatchString(value) {
		errs = append(errs, field+" must start with a lowercase letter and be 1-32 of [a-z0-9_-]")
	}
	return errs
}

func ValidateSiteURL(field string, value string) []string {
	var errs []string
	value = strings.TrimSpace(value)
	if value == "" {
		errs = append(errs, field+" cannot be empty")
		return errs
	}
	parsed, err := url.Parse(value)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "https" && parsed.Scheme != "http") {
		errs = append(errs, field+" must be an absolute http(s) URL")
	}
	return errs
}

func ValidateSiteName(field string, value string) []string {
	var errs []string
	value = strings.TrimSpace(value)
	if strings.ContainsAny(value, "\r\n") {
		errs = append(errs, field+" must not contain newlines")
	}
	if len(value) > 64 {
		errs = append(errs, field+" is too long")
	}
	return errs
}
