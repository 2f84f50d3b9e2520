package virality

import "regexp"

// Hand-tuned signal lists. These are matched as lowercase substrings and are
// kept exactly in sync with the scoring thresholds in scorer.go; changing a
// list changes observed scores, so treat entries as fixed constants.

var engagementBaitPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\brt if\b`),
	regexp.MustCompile(`\blike if\b`),
	regexp.MustCompile(`\bretweet if\b`),
	regexp.MustCompile(`\bshare if\b`),
	regexp.MustCompile(`\bfollow me\b`),
	regexp.MustCompile(`\bfree giveaway\b`),
	regexp.MustCompile(`\bairdrop\b`),
	regexp.MustCompile(`\bdm me\b`),
	regexp.MustCompile(`\bsubscribe\b`),
}

var spamRe = regexp.MustCompile(`\b(?:spam|giveaway|free money|pump)\b`)

var shareKeywords = []string{
	"framework",
	"checklist",
	"playbook",
	"lessons",
	"mistake",
	"mistakes",
	"rules",
	"steps",
	"ways",
	"principles",
	"guide",
	"template",
	"how to",
	"counterintuitive",
	"unpopular",
	"truth",
}

var replyKeywords = []string{
	"thoughts",
	"agree",
	"disagree",
	"anyone else",
	"curious",
	"hot take",
	"what do you think",
}

var clickKeywords = []string{
	"link",
	"full",
	"read",
	"guide",
	"template",
	"resource",
	"download",
	"demo",
}

var hookKeywords = []string{
	"here's",
	"nobody",
	"stop",
	"hot take",
	"wild",
	"truth",
	"mistake",
	"counterintuitive",
	"unpopular",
	"the real",
	"what nobody",
	"this is why",
	"changed how i",
}
