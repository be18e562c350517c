package normalize

var nbaTeams = []Team{
	{Code: "ATL", FullName: "Atlanta Hawks", Mascot: "Hawks", ShortName: "Atlanta"},
	{Code: "BOS", FullName: "Boston Celtics", Mascot: "Celtics", ShortName: "Boston"},
	{Code: "BKN", FullName: "Brooklyn Nets", Mascot: "Nets", ShortName: "Brooklyn"},
	{Code: "CHA", FullName: "Charlotte Hornets", Mascot: "Hornets", ShortName: "Charlotte"},
	{Code: "CHI", FullName: "Chicago Bulls", Mascot: "Bulls", ShortName: "Chicago"},
	{Code: "CLE", FullName: "Cleveland Cavaliers", Mascot: "Cavaliers", ShortName: "Cleveland"},
	{Code: "DAL", FullName: "Dallas Mavericks", Mascot: "Mavericks", ShortName: "Dallas"},
	{Code: "DEN", FullName: "Denver Nuggets", Mascot: "Nuggets", ShortName: "Denver"},
	{Code: "DET", FullName: "Detroit Pistons", Mascot: "Pistons", ShortName: "Detroit"},
	{Code: "GSW", FullName: "Golden State Warriors", Mascot: "Warriors", ShortName: "Golden State"},
	{Code: "HOU", FullName: "Houston Rockets", Mascot: "Rockets", ShortName: "Houston"},
	{Code: "IND", FullName: "Indiana Pacers", Mascot: "Pacers", ShortName: "Indiana"},
	{Code: "LAC", FullName: "Los Angeles Clippers", Mascot: "Clippers", ShortName: "LA Clippers"},
	{Code: "LAL", FullName: "Los Angeles Lakers", Mascot: "Lakers", ShortName: "LA Lakers"},
	{Code: "MEM", FullName: "Memphis Grizzlies", Mascot: "Grizzlies", ShortName: "Memphis"},
	{Code: "MIA", FullName: "Miami Heat", Mascot: "Heat", ShortName: "Miami"},
	{Code: "MIL", FullName: "Milwaukee Bucks", Mascot: "Bucks", ShortName: "Milwaukee"},
	{Code: "MIN", FullName: "Minnesota Timberwolves", Mascot: "Timberwolves", ShortName: "Minnesota"},
	{Code: "NOP", FullName: "New Orleans Pelicans", Mascot: "Pelicans", ShortName: "New Orleans"},
	{Code: "NYK", FullName: "New York Knicks", Mascot: "Knicks", ShortName: "New York"},
	{Code: "OKC", FullName: "Oklahoma City Thunder", Mascot: "Thunder", ShortName: "Oklahoma City"},
	{Code: "ORL", FullName: "Orlando Magic", Mascot: "Magic", ShortName: "Orlando"},
	{Code: "PHI", FullName: "Philadelphia 76ers", Mascot: "76ers", ShortName: "Philadelphia"},
	{Code: "PHX", FullName: "Phoenix Suns", Mascot: "Suns", ShortName: "Phoenix"},
	{Code: "POR", FullName: "Portland Trail Blazers", Mascot: "Trail Blazers", ShortName: "Portland"},
	{Code: "SAC", FullName: "Sacramento Kings", Mascot: "Kings", ShortName: "Sacramento"},
	{Code: "SAS", FullName: "San Antonio Spurs", Mascot: "Spurs", ShortName: "San Antonio"},
	{Code: "TOR", FullName: "Toronto Raptors", Mascot: "Raptors", ShortName: "Toronto"},
	{Code: "UTA", FullName: "Utah Jazz", Mascot: "Jazz", ShortName: "Utah"},
	{Code: "WAS", FullName: "Washington Wizards", Mascot: "Wizards", ShortName: "Washington"},
}
