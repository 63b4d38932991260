package model

// Categories lists the sections articles are filed under.
var Categories = []string{"Notícias", "Negócios", "Tecnologia", "Esportes"}

type Article struct {
	ID          int64  `json:"id,omitempty"`
	Title       string `json:"titulo"`
	Author      string `json:"autor"`
	Description string `json:"descricao"`
	Category    string `json:"categoria"`
	ImageURL    string `json:"imagemURL"`
	Link        string `json:"link"`
	PublishedAt string `json:"dataPublicacao,omitempty"`
}
