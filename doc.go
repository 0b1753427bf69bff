// Package persondex provides a Go client for the persondex missing-person
// registry backed by Redis.
//
// The client embeds the full registry logic: records are normalized,
// transliterated and indexed on write, and searches run the same ranked
// token-intersection pipeline the HTTP server uses.
//
//	client, _ := persondex.New(persondex.WithRedis("localhost:6379", ""))
//	defer client.Close()
//
//	client.Repos().Create(ctx, "quake2026", "2026 Coastal Earthquake")
//
//	persons := client.Persons("quake2026")
//	p, _ := persons.Create(ctx, persondex.PersonInput{
//	    GivenName:  "太郎",
//	    FamilyName: "山田",
//	    HomeCity:   "Sendai",
//	})
//	persons.AddNote(ctx, p.ID, "A neighbor", "Seen at the shelter.",
//	    persondex.StatusBelievedAlive)
//
//	results, _ := client.Search("quake2026").Query(ctx, "yamada taro", 20)
package persondex
