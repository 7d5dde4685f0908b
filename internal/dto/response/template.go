package response

type TemplateResponse struct {
	Key                   string `json:"key"`
	Title                 string `json:"title"`
	Content               string `json:"content"`
	RequiresCustomization bool   `json:"requires_customization"`
}

type RenderedTemplateResponse struct {
	Key     string `json:"key"`
	Title   string `json:"title"`
	Message string `json:"message"`
}
