package domain

type Symbol struct {
	Symbol   string
	Name     string
	Exchange string
	Industry string
}

type CompanyProfile struct {
	Symbol      string
	Name        string
	Exchange    string
	Industry    string
	Website     string
	Description string
}
