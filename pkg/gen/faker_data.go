package gen

// Curated corpora for the deterministic fakers. Values are intentionally
// plain so generated datasets read naturally in test reports.

var fakerFirstNames = []string{
	"Aarav", "Ananya", "Arjun", "Diya", "Ishaan",
	"Kavya", "Rohan", "Priya", "Vihaan", "Meera",
	"John", "Jane", "Alice", "Robert", "Diana",
	"Edward", "Fiona", "Charlie", "Grace", "Henry",
}

var fakerLastNames = []string{
	"Sharma", "Patel", "Singh", "Iyer", "Reddy",
	"Gupta", "Mehta", "Nair", "Kulkarni", "Das",
	"Smith", "Johnson", "Williams", "Brown", "Davis",
	"Miller", "Wilson", "Taylor", "Clark", "Lewis",
}

// fakerEmailDomains only contains reserved/example domains so generated
// addresses can never reach a real mailbox.
var fakerEmailDomains = []string{
	"example.com", "example.org", "example.net", "test.com", "demo.org",
}

var fakerPasswordLower = "abcdefghijkmnopqrstuvwxyz"
var fakerPasswordUpper = "ABCDEFGHJKLMNPQRSTUVWXYZ"
var fakerPasswordDigits = "23456789"
var fakerPasswordSpecial = "!@#$%^&*"
