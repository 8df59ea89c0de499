package cmd

// commandDocs documentation info used for help command.
type commandDocs struct {
	name    string
	params  string
	summary string
	minArgs int
	maxArgs int // -1 for no limit
}

var commandTable = []commandDocs{
	{"SET", "key value", "Store value under key, replacing any previous value", 2, -1},
	{"GET", "key", "Get the value of key", 1, 1},
	{"DEL", "key", "Delete key", 1, 1},
	{"EXISTS", "key", "Determine if key exists", 1, 1},
	{"LEN", "", "Number of entries", 0, 0},
	{"KEYS", "", "All keys in bucket order", 0, 0},
	{"VALUES", "", "All values in bucket order", 0, 0},
	{"ITEMS", "", "All key-value pairs in bucket order", 0, 0},
	{"INDEX", "key", "Bucket index key hashes to", 1, 1},
	{"STATS", "", "Capacity, load factor and chain lengths", 0, 0},
	{"DUMP", "", "Formatted representation of the table", 0, 0},
	{"DEMO", "", "Run the demonstration on a fresh table", 0, 0},
	{"CLEAR", "", "Clear the screen", 0, 0},
	{"HELP", "", "Show this help", 0, 0},
	{"QUIT", "", "Leave the shell", 0, 0},
}

func lookupCommand(name string) (commandDocs, bool) {
	for _, doc := range commandTable {
		if doc.name == name {
			return doc, true
		}
	}
	return commandDocs{}, false
}
