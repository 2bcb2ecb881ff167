package domain

import "path/filepath"

// Role identifies the semantic meaning of an uploaded file as submitted
// to the analysis service.
type Role string

const (
	// RoleBusiness is the business listings dataset.
	RoleBusiness Role = "business"

	// RoleDemographics is the demographic statistics dataset.
	RoleDemographics Role = "demographics"
)

// Upload is one user-supplied input file.
type Upload struct {
	// Path is the location of the file on disk.
	Path string
}

// Name returns the base name of the upload for display and multipart
// filenames.
func (u Upload) Name() string {
	if u.Path == "" {
		return ""
	}
	return filepath.Base(u.Path)
}

// IsZero reports whether no file has been assigned.
func (u Upload) IsZero() bool {
	return u.Path == ""
}

// UploadPair is the two input files with their assigned roles.
// The user-facing assignment is never mutated; the swap-retry path works
// on a transient copy from Swapped.
type UploadPair struct {
	Business     Upload
	Demographics Upload
}

// Validate checks that both files are assigned.
func (p UploadPair) Validate() error {
	if p.Business.IsZero() || p.Demographics.IsZero() {
		return ErrMissingInput
	}
	return nil
}

// Swapped returns a copy of the pair with the two files' roles exchanged.
func (p UploadPair) Swapped() UploadPair {
	return UploadPair{
		Business:     p.Demographics,
		Demographics: p.Business,
	}
}
