package unsplash

// searchResponse mirrors the subset of the Unsplash /search/photos payload
// the application consumes.
type searchResponse struct {
	Total      int     `json:"total"`
	TotalPages int     `json:"total_pages"`
	Results    []photo `json:"results"`
}

type photo struct {
	ID   string    `json:"id"`
	URLs photoURLs `json:"urls"`
	User photoUser `json:"user"`
}

type photoURLs struct {
	Raw     string `json:"raw"`
	Full    string `json:"full"`
	Regular string `json:"regular"`
	Small   string `json:"small"`
	Thumb   string `json:"thumb"`
}

type photoUser struct {
	Name  string     `json:"name"`
	Links photoLinks `json:"links"`
}

type photoLinks struct {
	HTML string `json:"html"`
}
