package rank

import (
	"sort"
	"strconv"
	"strings"
)

// Season identifiers are opaque UUIDs with no usable sort order. This
// table pins each shipped competitive season to its episode/act short
// code, which is what everything chronological hangs off.
var seasonShortCodes = map[string]string{
	"0530b9c4-4980-f2ee-df5d-09864cd00542": "e1a2",
	"46ea6166-4573-1128-9cea-60a15640059b": "e1a3",
	"97b6e739-44cc-ffa7-49ad-398ba502ceb0": "e2a1",
	"ab57ef51-4e59-da91-cc8d-51a5a2b9b8ff": "e2a2",
	"52e9749a-429b-7060-99fe-4595426a0cf7": "e2a3",
	"16118998-4705-5813-86dd-0292a2439d90": "e3a1",
	"4cb622e1-4244-6da3-7276-8daaf1c01be2": "e3a2",
	"a16955a5-4ad0-f761-5e9e-389df1c892fb": "e3a3",
	"573f53ac-41a5-3a7d-d9ce-d6a6298e5704": "e4a1",
	"d929bc38-4ab6-7da4-94f0-ee84f8ac141e": "e4a2",
	"3e47230a-463c-a301-eb7d-67bb60357d4f": "e4a3",
	"67e373c7-48f7-b422-641b-079ace30b427": "e5a1",
	"7a85de9a-4032-61a9-61d8-f4aa2b4a84b6": "e5a2",
	"aca29595-40e4-01f5-3f35-b1b3d304c96e": "e5a3",
	"9c91a445-4f78-1baa-a3ea-8f8aadf4914d": "e6a1",
	"34093c29-4306-43de-452f-3f944bde22be": "e6a2",
	"2de5423b-4aad-02ad-8d9b-c0a931958861": "e6a3",
	"4d4ce85a-f26f-d7e1-fb23-f02dc69dc52c": "e7a1",
	"03dfd004-45d4-ebfd-ab0a-948ce780dac4": "e7a2",
	"4401f9fd-4170-2e4c-4bc3-f3b4d7d150d1": "e7a3",
	"22d10d66-4d2a-a340-6c54-408c7bd53807": "e8a1",
	"292f58db-4c17-89a7-b1c0-ba988f0e9d98": "e8a2",
	"4539cac3-47ae-90e5-3d01-b3812ca3274e": "e8a3",
	"476b0893-4c2e-abd6-c5fe-708facff0772": "e9a1",
	"4c4b8cff-43eb-13d3-8f14-96b783c90cd2": "e9a2",
	"dcde7346-4085-de4f-c463-2489ed47983b": "e9a3",
	"476b92e4-88ac-d0ea-4c0f-84838b62b0d7": "e10a1",
	"1611cbeb-c1e6-d92d-22f6-8a8084e4c5a7": "e10a2",
	"aef237a0-494d-3a14-a1c8-ec8de84e309c": "e10a3",
	"ac12e9b3-47e6-9599-8fa1-0bb473e5efc7": "e10a4",
	"5adc33fa-4f30-2899-f131-6fba64c5dd3a": "e10a5",
	"4c4bf00b-e78a-7a79-04af-0aa63068e4e2": "e10a6",
	"ec876e6c-43e8-fa63-ffc1-2e8d4db25525": "e10a7",
}

// ShortCode resolves a season identifier to its e#a# short code. Unknown
// identifiers degrade to a lowercased prefix of the identifier; the
// prefix never parses as episode/act (UUIDs contain no "e<digits>a"
// shape in their first four characters), so such seasons drop out of
// every chronological listing.
func ShortCode(seasonID string) string {
	if short, ok := seasonShortCodes[seasonID]; ok {
		return short
	}
	if seasonID == "" {
		return "unknown"
	}
	if len(seasonID) > 4 {
		seasonID = seasonID[:4]
	}
	return strings.ToLower(seasonID)
}

// ParseShortCode extracts the (episode, act) pair from a short code like
// "e8a3". ok is false for anything that does not match the shape.
func ParseShortCode(short string) (episode, act int, ok bool) {
	if len(short) < 4 || short[0] != 'e' {
		return 0, 0, false
	}
	epStr, actStr, found := strings.Cut(short[1:], "a")
	if !found {
		return 0, 0, false
	}
	episode, err := strconv.Atoi(epStr)
	if err != nil {
		return 0, 0, false
	}
	act, err = strconv.Atoi(actStr)
	if err != nil {
		return 0, 0, false
	}
	return episode, act, true
}

// SortChronological orders season identifiers ascending by
// (episode, act). Identifiers whose short code does not parse are
// excluded; they cannot be chronologically placed. The input slice is
// left untouched.
func SortChronological(seasonIDs []string) []string {
	type keyed struct {
		id      string
		episode int
		act     int
	}
	ordered := make([]keyed, 0, len(seasonIDs))
	for _, id := range seasonIDs {
		ep, act, ok := ParseShortCode(ShortCode(id))
		if !ok {
			continue
		}
		ordered = append(ordered, keyed{id: id, episode: ep, act: act})
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].episode != ordered[j].episode {
			return ordered[i].episode < ordered[j].episode
		}
		return ordered[i].act < ordered[j].act
	})
	out := make([]string, len(ordered))
	for i, k := range ordered {
		out[i] = k.id
	}
	return out
}
