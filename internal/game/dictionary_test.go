package game

import (
	"encoding/json"
	"testing"

	"github.com/pixil98/go-olc/internal/storage"
	"github.com/pixil98/go-testutil"
)

func TestParseKind(t *testing.T) {
	tests := map[string]struct {
		input  string
		exp    Kind
		expErr string
	}{
		"exact":        {input: "generic", exp: KindGeneric},
		"upper":        {input: "SECTOR", exp: KindSector},
		"prefix":       {input: "adv", exp: KindAdventure},
		"ambiguous":    {input: "cr", expErr: `"cr" is ambiguous`},
		"unknown":      {input: "mobile", expErr: `unknown type "mobile"`},
		"empty":        {input: "  ", expErr: "no type given"},
		"unique short": {input: "e", exp: KindEvent},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseKind(tt.input)

			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "kind", got, tt.exp)
		})
	}
}

func scenarioDictionary() *Dictionary {
	d := NewDictionary()

	mead := NewGeneric(9000)
	mead.Name = "Mead"
	mead.SetType(GenericLiquid)
	mead.Strings[LiquidName] = "mead"
	d.Generics.Insert(mead)

	comp := NewGeneric(9001)
	comp.Name = "mead"
	comp.SetType(GenericComponent)
	comp.Relations.Add(9000)
	d.Generics.Insert(comp)

	tongue := NewGeneric(9100)
	tongue.Name = "Guardian Tongue"
	tongue.SetType(GenericLanguage)
	d.Generics.Insert(tongue)

	water := NewGeneric(0)
	water.Name = "water"
	water.SetType(GenericLiquid)
	water.Strings[LiquidName] = "water"
	d.Generics.Insert(water)

	return d
}

func TestDictionary_FindGenericByName(t *testing.T) {
	d := scenarioDictionary()

	tests := map[string]struct {
		genType GenericType
		input   string
		exact   bool
		expVnum storage.Vnum
		expOk   bool
	}{
		"component by name":       {genType: GenericComponent, input: "mead", expVnum: 9001, expOk: true},
		"liquid by name":          {genType: GenericLiquid, input: "MEAD", expVnum: 9000, expOk: true},
		"abbreviation":            {genType: GenericLiquid, input: "wat", expVnum: 0, expOk: true},
		"abbreviation not exact":  {genType: GenericLiquid, input: "wat", exact: true},
		"wrong type":              {genType: GenericCurrency, input: "mead"},
		"normalized language":     {genType: GenericLanguage, input: "guardiantongue", expVnum: 9100, expOk: true},
		"normalized non-language": {genType: GenericLiquid, input: "me-ad"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			g, ok := d.FindGenericByName(tt.genType, tt.input, tt.exact)
			testutil.AssertEqual(t, "found", ok, tt.expOk)
			if ok {
				testutil.AssertEqual(t, "vnum", g.Vnum(), tt.expVnum)
			}
		})
	}
}

func TestDictionary_FindGeneric(t *testing.T) {
	d := scenarioDictionary()

	_, ok := d.FindGeneric(9000, GenericLiquid)
	testutil.AssertEqual(t, "typed", ok, true)
	_, ok = d.FindGeneric(9000, GenericComponent)
	testutil.AssertEqual(t, "wrong type", ok, false)
	_, ok = d.FindGeneric(9000, GenericUnknown)
	testutil.AssertEqual(t, "any type", ok, true)
	_, ok = d.FindGeneric(1234, GenericUnknown)
	testutil.AssertEqual(t, "missing", ok, false)

	testutil.AssertEqual(t, "liquid name", d.LiquidName(0), "water")
	testutil.AssertEqual(t, "not a liquid", d.LiquidName(9001), "")
}

func TestDictionary_Lookup(t *testing.T) {
	d := scenarioDictionary()
	d.Sectors.Insert(NewSector(1))

	p, ok := d.Lookup(KindGeneric, 9001)
	testutil.AssertEqual(t, "generic found", ok, true)
	testutil.AssertEqual(t, "generic kind", p.Kind(), KindGeneric)

	_, ok = d.Lookup(KindSector, 2)
	testutil.AssertEqual(t, "sector missing", ok, false)

	testutil.AssertEqual(t, "generic count", d.Count(KindGeneric), 4)
	testutil.AssertEqual(t, "sector count", d.Count(KindSector), 1)
	testutil.AssertEqual(t, "unknown count", d.Count("mobile"), 0)
}

// fullDictionary has one populated prototype of every kind.
func fullDictionary() *Dictionary {
	d := NewDictionary()

	book := NewBook(5000)
	book.Author = 12
	book.Title = "On Bees"
	book.Paragraphs = []string{"Bees are small.", "They make honey."}
	book.Libraries = Vnums{3001}
	d.Books.Insert(book)

	ev := NewEvent(100)
	ev.Name = "Harvest Festival"
	ev.Notes = "runs in autumn"
	ev.Duration = 60
	ev.RankRewards = EventRewards{{Min: 1, Max: 1, Reward: Reward{Type: RewardObject, Vnum: 4000, Amount: 1}}}
	ev.ThresholdRewards = EventRewards{{Min: 100, Reward: Reward{Type: RewardEventPoints, Vnum: 101, Amount: 5}}}
	d.Events.Insert(ev)

	g := NewGeneric(9001)
	g.Name = "honeycomb"
	g.SetType(GenericComponent)
	g.Strings[ComponentPlural] = "honeycombs"
	g.Relations.Add(9000)
	d.Generics.Insert(g)

	adv := NewAdventure(10)
	adv.StartVnum, adv.EndVnum = 10000, 10099
	adv.Links = LinkRules{{Type: LinkPortalWorld, Value: 3}, {Type: LinkTimeLimit, Value: 120}}
	adv.Scripts = Vnums{10000}
	d.Adventures.Insert(adv)

	bld := NewBuilding(5100)
	bld.Description = "A sturdy hut.\r\n"
	bld.Relations.Add(RelationUpgradesTo, 5101)
	bld.Maintenance = Resources{{Type: ResourceComponent, Vnum: 9001, Amount: 2}}
	bld.Interactions = Interactions{{Type: InteractChop, Vnum: 120, Quantity: 1, Percent: 12.5}}
	bld.ExtraDescs = ExtraDescs{{Keywords: "door", Description: "It is wooden."}}
	d.Buildings.Insert(bld)

	crop := NewCrop(20)
	crop.Climate = ClimateTemperate
	crop.Icons = Icons{{Season: "spring", Color: "&g", Icon: "[**]"}}
	crop.Spawns = Spawns{{Vnum: 300, Percent: 1.5}}
	d.Crops.Insert(crop)

	glb := NewGlobalRule(30)
	glb.Type = GlobalNewbieGear
	glb.Gear = Gear{{Wear: "body", Vnum: 4001}}
	glb.Values[2] = 7
	d.Globals.Insert(glb)

	sect := NewSector(3)
	sect.Evolutions = Evolutions{{Type: EvoAdjacentOne, Value: 4, Becomes: 5, Percent: 0.5}}
	d.Sectors.Insert(sect)

	craft := NewCraft(40)
	craft.BuildTarget = 5100
	craft.Resources = Resources{{Type: ResourceObject, Vnum: 4000, Amount: 3}}
	d.Crafts.Insert(craft)

	quest := NewQuest(50)
	quest.Starts = Givers{{Type: GiverBuilding, Vnum: 5100}}
	quest.Tasks = Requirements{{Type: ReqGetComponent, Vnum: 9001, Needed: 4}}
	quest.Rewards = Rewards{{Type: RewardSpeakLanguage, Vnum: 9100}}
	d.Quests.Insert(quest)

	prg := NewProgress(60)
	prg.Tasks = Requirements{{Type: ReqOwnBuilding, Vnum: 5100, Needed: 1}}
	d.Progress.Insert(prg)

	shop := NewShop(70)
	shop.Locations = Givers{{Type: GiverBuilding, Vnum: 5100}}
	d.Shops.Insert(shop)

	soc := NewSocial(80)
	soc.Command = "cheer"
	soc.Requirements = Requirements{{Type: ReqEventRunning, Vnum: 100}}
	d.Socials.Insert(soc)

	veh := NewVehicle(90)
	veh.Interior = 5100
	d.Vehicles.Insert(veh)

	obj := NewObjectProto(4000)
	obj.Type = ObjectDrinkContainer
	obj.Liquid = 9000
	obj.Storage = StorageEntries{{Building: 5100}}
	d.Objects.Insert(obj)

	return d
}

func TestDictionary_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := fullDictionary()

	lib := storage.NewLibrary(dir)
	for _, kind := range AllKinds {
		tbl, _ := src.Table(kind)
		lib.Attach(tbl)
		lib.SaveIndex(string(kind))
		for _, b := range tbl.Blocks() {
			lib.SaveBlock(string(kind), b)
		}
	}
	if err := lib.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	dst := NewDictionary()
	if err := dst.Load(storage.NewLibrary(dir)); err != nil {
		t.Fatalf("load: %v", err)
	}

	for _, kind := range AllKinds {
		t.Run(string(kind), func(t *testing.T) {
			srcTbl, _ := src.Table(kind)
			for _, b := range srcTbl.Blocks() {
				dstTbl, _ := dst.Table(kind)
				exp, err := srcTbl.EncodeBlock(b)
				if err != nil {
					t.Fatalf("encode source: %v", err)
				}
				got, err := dstTbl.EncodeBlock(b)
				if err != nil {
					t.Fatalf("encode loaded: %v", err)
				}
				testutil.AssertEqual(t, "block", string(got), string(exp))
			}
			testutil.AssertEqual(t, "count", dst.Count(kind), src.Count(kind))
		})
	}

	book := dst.Books.Get(5000)
	testutil.AssertEqual(t, "book block is author", dst.Books.BlockOf(book), 12)
	testutil.AssertEqual(t, "notes", dst.Events.Get(100).Notes, "runs in autumn")
}

func TestDictionary_RoundTripClearedOptional(t *testing.T) {
	d := NewDictionary()
	ev := NewEvent(1)
	ev.Notes = "   "
	ev.Sanitize()
	d.Events.Insert(ev)

	data, err := d.Events.EncodeBlock(0)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var raw []struct {
		Spec map[string]json.RawMessage `json:"spec"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	testutil.AssertEqual(t, "records", len(raw), 1)
	_, present := raw[0].Spec["notes"]
	testutil.AssertEqual(t, "notes written", present, false)

	loaded := NewDictionary()
	if err := loaded.Events.DecodeBlock(data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	testutil.AssertEqual(t, "notes", loaded.Events.Get(1).Notes, "")
}
