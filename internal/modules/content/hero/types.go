package hero

type CreateHeroDTO struct {
	Name        string `json:"name"        binding:"required"`
	Title       string `json:"title"       binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	LinkedIn    string `json:"linkedin"`
	GitHub      string `json:"github"`
	Instagram   string `json:"instagram"`
	Twitter     string `json:"twitter"`
	Fiverr      string `json:"fiverr"`
	Upwork      string `json:"upwork"`
}

// UpdateHeroDTO carries the row id in the body since the resource path has none.
type UpdateHeroDTO struct {
	ID          string  `json:"id"`
	Name        *string `json:"name"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	LinkedIn    *string `json:"linkedin"`
	GitHub      *string `json:"github"`
	Instagram   *string `json:"instagram"`
	Twitter     *string `json:"twitter"`
	Fiverr      *string `json:"fiverr"`
	Upwork      *string `json:"upwork"`
}

func (d *UpdateHeroDTO) updates() map[string]interface{} {
	updates := map[string]interface{}{}
	set := func(column string, v *string) {
		if v != nil {
			updates[column] = *v
		}
	}
	set("name", d.Name)
	set("title", d.Title)
	set("description", d.Description)
	set("image", d.Image)
	set("linkedin", d.LinkedIn)
	set("github", d.GitHub)
	set("instagram", d.Instagram)
	set("twitter", d.Twitter)
	set("fiverr", d.Fiverr)
	set("upwork", d.Upwork)
	return updates
}
