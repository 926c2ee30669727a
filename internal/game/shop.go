package game

import (
	"fmt"

	"github.com/pixil98/go-olc/internal/storage"
)

const (
	DefaultShopName   = "Unnamed Shop"
	DefaultSocialName = "Unnamed Social"
)

const (
	ShopInDevelopment Flags = 1 << iota
	ShopTravelling
)

var ShopFlagNames = FlagNames{"in-development", "travelling"}

// Shop sells goods wherever one of its locations is.
type Shop struct {
	vnum storage.Vnum

	Name      string `json:"name"`
	Flags     Flags  `json:"flags"`
	Locations Givers `json:"locations"`
}

func NewShop(vnum storage.Vnum) *Shop {
	return &Shop{vnum: vnum, Name: DefaultShopName, Flags: ShopInDevelopment}
}

func (s *Shop) Vnum() storage.Vnum     { return s.vnum }
func (s *Shop) SetVnum(v storage.Vnum) { s.vnum = v }
func (s *Shop) Kind() Kind             { return KindShop }
func (s *Shop) Label() string          { return s.Name }

func (s *Shop) InDevelopment() bool      { return s.Flags.Has(ShopInDevelopment) }
func (s *Shop) SetInDevelopment(on bool) { s.Flags.SetTo(ShopInDevelopment, on) }

func (s *Shop) Clone() *Shop {
	c := *s
	c.Locations = s.Locations.Copy()
	return &c
}

func (s *Shop) Sanitize() {
	s.Name = defaultIfBlank(s.Name, DefaultShopName)
}

func (s *Shop) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

const (
	SocialInDevelopment Flags = 1 << iota
	SocialHidden
)

var SocialFlagNames = FlagNames{"in-development", "hidden"}

type Social struct {
	vnum storage.Vnum

	Name         string       `json:"name"`
	Command      string       `json:"command"`
	Flags        Flags        `json:"flags"`
	Requirements Requirements `json:"requirements"`
}

func NewSocial(vnum storage.Vnum) *Social {
	return &Social{vnum: vnum, Name: DefaultSocialName, Flags: SocialInDevelopment}
}

func (s *Social) Vnum() storage.Vnum     { return s.vnum }
func (s *Social) SetVnum(v storage.Vnum) { s.vnum = v }
func (s *Social) Kind() Kind             { return KindSocial }
func (s *Social) Label() string          { return s.Name }

func (s *Social) InDevelopment() bool      { return s.Flags.Has(SocialInDevelopment) }
func (s *Social) SetInDevelopment(on bool) { s.Flags.SetTo(SocialInDevelopment, on) }

func (s *Social) Clone() *Social {
	c := *s
	c.Requirements = s.Requirements.Copy()
	return &c
}

func (s *Social) Sanitize() {
	s.Name = defaultIfBlank(s.Name, DefaultSocialName)
}

func (s *Social) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}
