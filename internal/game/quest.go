package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-olc/internal/storage"
)

const (
	DefaultQuestName        = "Unnamed Quest"
	DefaultQuestDescription = "This quest has no description.\r\n"
	DefaultProgressName     = "Unnamed Goal"
)

const (
	QuestInDevelopment Flags = 1 << iota
	QuestRepeatable
	QuestDaily
	QuestEmpire
)

var QuestFlagNames = FlagNames{"in-development", "repeatable", "daily", "empire"}

type Quest struct {
	vnum storage.Vnum

	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Flags         Flags        `json:"flags"`
	MinLevel      int          `json:"min_level"`
	MaxLevel      int          `json:"max_level"`
	Starts        Givers       `json:"starts"`
	Ends          Givers       `json:"ends"`
	Tasks         Requirements `json:"tasks"`
	Prerequisites Requirements `json:"prerequisites"`
	Rewards       Rewards      `json:"rewards"`
}

func NewQuest(vnum storage.Vnum) *Quest {
	return &Quest{
		vnum:        vnum,
		Name:        DefaultQuestName,
		Description: DefaultQuestDescription,
		Flags:       QuestInDevelopment,
	}
}

func (q *Quest) Vnum() storage.Vnum     { return q.vnum }
func (q *Quest) SetVnum(v storage.Vnum) { q.vnum = v }
func (q *Quest) Kind() Kind             { return KindQuest }
func (q *Quest) Label() string          { return q.Name }

func (q *Quest) InDevelopment() bool      { return q.Flags.Has(QuestInDevelopment) }
func (q *Quest) SetInDevelopment(on bool) { q.Flags.SetTo(QuestInDevelopment, on) }

func (q *Quest) Clone() *Quest {
	c := *q
	c.Starts = q.Starts.Copy()
	c.Ends = q.Ends.Copy()
	c.Tasks = q.Tasks.Copy()
	c.Prerequisites = q.Prerequisites.Copy()
	c.Rewards = q.Rewards.Copy()
	return &c
}

func (q *Quest) Sanitize() {
	q.Name = defaultIfBlank(q.Name, DefaultQuestName)
	q.Description = defaultIfBlank(q.Description, DefaultQuestDescription)
}

func (q *Quest) Validate() error {
	el := errors.NewErrorList()

	if q.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	for i, r := range q.Rewards {
		if !RewardTypeNames.Valid(int(r.Type)) {
			el.Add(fmt.Errorf("reward %d: unknown type %d", i, r.Type))
		}
	}

	return el.Err()
}

const (
	ProgressInDevelopment Flags = 1 << iota
	ProgressPurchasable
	ProgressHidden
)

var ProgressFlagNames = FlagNames{"in-development", "purchasable", "hidden"}

// Progress is an empire goal.
type Progress struct {
	vnum storage.Vnum

	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	Flags         Flags        `json:"flags"`
	Value         int          `json:"value"`
	Tasks         Requirements `json:"tasks"`
	Prerequisites Vnums        `json:"prerequisites"`
}

func NewProgress(vnum storage.Vnum) *Progress {
	return &Progress{
		vnum:  vnum,
		Name:  DefaultProgressName,
		Flags: ProgressInDevelopment,
	}
}

func (p *Progress) Vnum() storage.Vnum     { return p.vnum }
func (p *Progress) SetVnum(v storage.Vnum) { p.vnum = v }
func (p *Progress) Kind() Kind             { return KindProgress }
func (p *Progress) Label() string          { return p.Name }

func (p *Progress) InDevelopment() bool      { return p.Flags.Has(ProgressInDevelopment) }
func (p *Progress) SetInDevelopment(on bool) { p.Flags.SetTo(ProgressInDevelopment, on) }

func (p *Progress) Clone() *Progress {
	c := *p
	c.Tasks = p.Tasks.Copy()
	c.Prerequisites = p.Prerequisites.Copy()
	return &c
}

func (p *Progress) Sanitize() {
	p.Name = defaultIfBlank(p.Name, DefaultProgressName)
	p.Description = optional(p.Description)
}

func (p *Progress) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}
