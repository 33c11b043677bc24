package entity

type Organization struct {
	Base

	Name      string
	LogoURL   string
	Country   string
	Languages Array[string]
	SDGs      Array[int]
}
