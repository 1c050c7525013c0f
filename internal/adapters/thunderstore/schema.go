package thunderstore

import "time"

// PackageResponse is the package listing returned by the experimental API.
type PackageResponse struct {
	Namespace    string           `json:"namespace"`
	Name         string           `json:"name"`
	FullName     string           `json:"full_name"`
	Owner        string           `json:"owner"`
	PackageURL   string           `json:"package_url"`
	DateCreated  time.Time        `json:"date_created"`
	DateUpdated  time.Time        `json:"date_updated"`
	IsDeprecated bool             `json:"is_deprecated"`
	Latest       *VersionResponse `json:"latest"`
}

// VersionResponse is a single published package version.
type VersionResponse struct {
	Namespace     string    `json:"namespace"`
	Name          string    `json:"name"`
	VersionNumber string    `json:"version_number"`
	FullName      string    `json:"full_name"`
	Description   string    `json:"description"`
	Dependencies  []string  `json:"dependencies"`
	DownloadURL   string    `json:"download_url"`
	Downloads     int64     `json:"downloads"`
	DateCreated   time.Time `json:"date_created"`
	WebsiteURL    string    `json:"website_url"`
	IsActive      bool      `json:"is_active"`
	FileSize      int64     `json:"file_size"`
}

// missingFields lists the required fields absent from v.
func (v *VersionResponse) missingFields() []string {
	var missing []string
	if v.Namespace == "" {
		missing = append(missing, "namespace")
	}
	if v.Name == "" {
		missing = append(missing, "name")
	}
	if v.VersionNumber == "" {
		missing = append(missing, "version_number")
	}
	if v.DownloadURL == "" {
		missing = append(missing, "download_url")
	}
	if v.DateCreated.IsZero() {
		missing = append(missing, "date_created")
	}
	return missing
}
