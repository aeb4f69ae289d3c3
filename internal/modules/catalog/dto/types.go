package dto

type FeedResult struct {
	Key      string
	Label    string
	Count    int
	Notified bool
	Delta    int
	Err      string
}

type CheckOutput struct {
	Results []FeedResult
}

// Failed counts feeds that could not be fetched.
func (o CheckOutput) Failed() int {
	n := 0
	for _, r := range o.Results {
		if r.Err != "" {
			n++
		}
	}
	return n
}
