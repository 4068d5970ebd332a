package models

// ProfileInfo is the single persisted user profile. ImageFilename points
// at most at one file in the image store; replacing the image deletes the
// previous file.
type ProfileInfo struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Bio           string `json:"bio"`
	ImageFilename string `json:"image_filename,omitempty"`
}
