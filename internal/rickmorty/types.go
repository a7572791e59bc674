package rickmorty

// Character is a single search hit.
type Character struct {
	ID       int
	Name     string
	Status   string
	Species  string
	ImageURL string
	// EpisodeCount is the number of episodes the character appears in.
	EpisodeCount int
}

// Page is one page of search results.
type Page struct {
	Count      int // total matches across all pages
	Pages      int
	Next       string
	Characters []Character
}

// API response types.

type searchResponse struct {
	Info    pageInfo          `json:"info"`
	Results []characterResult `json:"results"`
}

type pageInfo struct {
	Count int     `json:"count"`
	Pages int     `json:"pages"`
	Next  *string `json:"next"`
	Prev  *string `json:"prev"`
}

type characterResult struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Status  string   `json:"status"`
	Species string   `json:"species"`
	Image   string   `json:"image"`
	Episode []string `json:"episode"`
}

func (r *searchResponse) toPage() *Page {
	page := &Page{
		Count:      r.Info.Count,
		Pages:      r.Info.Pages,
		Characters: make([]Character, 0, len(r.Results)),
	}
	if r.Info.Next != nil {
		page.Next = *r.Info.Next
	}

	for i := range r.Results {
		c := &r.Results[i]
		page.Characters = append(page.Characters, Character{
			ID:           c.ID,
			Name:         c.Name,
			Status:       c.Status,
			Species:      c.Species,
			ImageURL:     c.Image,
			EpisodeCount: len(c.Episode),
		})
	}

	return page
}
