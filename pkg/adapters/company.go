package adapters

import (
	"github.com/de-tools/market-atlas/pkg/models/api"
	"github.com/de-tools/market-atlas/pkg/models/domain"
	"github.com/de-tools/market-atlas/pkg/models/store"
)

func MapStoreSymbolToDomain(s store.Symbol) domain.Symbol {
	return domain.Symbol{
		Symbol:   s.Symbol,
		Name:     s.Name,
		Exchange: s.Exchange,
		Industry: s.Industry,
	}
}

func MapStoreSymbolsToDomain(symbols []store.Symbol) []domain.Symbol {
	result := make([]domain.Symbol, 0, len(symbols))
	for _, s := range symbols {
		result = append(result, MapStoreSymbolToDomain(s))
	}
	return result
}

func MapStoreSymbolToProfile(s store.Symbol) domain.CompanyProfile {
	return domain.CompanyProfile{
		Symbol:   s.Symbol,
		Name:     s.Name,
		Exchange: s.Exchange,
		Industry: s.Industry,
	}
}

func MapStoreProfileToDomain(p store.CompanyProfile) domain.CompanyProfile {
	return domain.CompanyProfile{
		Symbol:      p.Symbol,
		Name:        p.Name,
		Exchange:    p.Exchange,
		Industry:    p.Industry,
		Website:     p.Website,
		Description: p.Description,
	}
}

// MergeProfile fills the blank fields of primary from fallback.
func MergeProfile(primary, fallback domain.CompanyProfile) domain.CompanyProfile {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&primary.Symbol, fallback.Symbol)
	fill(&primary.Name, fallback.Name)
	fill(&primary.Exchange, fallback.Exchange)
	fill(&primary.Industry, fallback.Industry)
	fill(&primary.Website, fallback.Website)
	fill(&primary.Description, fallback.Description)
	return primary
}

func MapSymbolDomainToApi(s domain.Symbol) api.Symbol {
	return api.Symbol{
		Symbol:   s.Symbol,
		Name:     s.Name,
		Exchange: s.Exchange,
		Industry: s.Industry,
	}
}

func MapSymbolsDomainToApi(symbols []domain.Symbol) []api.Symbol {
	result := make([]api.Symbol, 0, len(symbols))
	for _, s := range symbols {
		result = append(result, MapSymbolDomainToApi(s))
	}
	return result
}

func MapProfileDomainToApi(p domain.CompanyProfile) api.CompanyProfile {
	return api.CompanyProfile{
		Symbol:      p.Symbol,
		Name:        p.Name,
		Exchange:    p.Exchange,
		Industry:    p.Industry,
		Website:     p.Website,
		Description: p.Description,
	}
}
