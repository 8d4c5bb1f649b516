package questions

import "github.com/triviador-game/triviador-backend/internal/engine"

// The banks below are the game's fixed trivia content, grouped by
// category. Answer comparison elsewhere is an exact string match against
// the Answer field.

var romaniaQuestions = []engine.Question{
	{
		Prompt:   "What is the capital of Romania?",
		Options:  []string{"Bucharest", "Paris", "Berlin", "Madrid"},
		Answer:   "Bucharest",
		Category: "geography",
	},
	{
		Prompt:   "Who wrote the novel \"Ion\"?",
		Options:  []string{"Liviu Rebreanu", "Mihail Sadoveanu", "Ion Creangă", "George Coșbuc"},
		Answer:   "Liviu Rebreanu",
		Category: "literature",
	},
	{
		Prompt:   "In what year did Romania join the European Union?",
		Options:  []string{"2007", "2004", "2010", "2000"},
		Answer:   "2007",
		Category: "history",
	},
	{
		Prompt:   "What is the largest river in Romania?",
		Options:  []string{"Danube", "Olt", "Mures", "Siret"},
		Answer:   "Danube",
		Category: "geography",
	},
	{
		Prompt:   "Which mountain range runs through Romania?",
		Options:  []string{"Carpathians", "Alps", "Pyrenees", "Urals"},
		Answer:   "Carpathians",
		Category: "geography",
	},
	{
		Prompt:   "What is the name of the Romanian currency?",
		Options:  []string{"Leu", "Euro", "Dollar", "Zloty"},
		Answer:   "Leu",
		Category: "general",
	},
	{
		Prompt:   "Which of these is a traditional Romanian dish?",
		Options:  []string{"Sarmale", "Paella", "Sushi", "Hamburger"},
		Answer:   "Sarmale",
		Category: "culture",
	},
	{
		Prompt:   "Who is considered the national poet of Romania?",
		Options:  []string{"Mihai Eminescu", "Ion Luca Caragiale", "Nichita Stănescu", "Tudor Arghezi"},
		Answer:   "Mihai Eminescu",
		Category: "literature",
	},
	{
		Prompt:   "Which Romanian gymnast scored a perfect 10 at the 1976 Olympics?",
		Options:  []string{"Nadia Comăneci", "Simona Halep", "Gheorghe Hagi", "Ilie Năstase"},
		Answer:   "Nadia Comăneci",
		Category: "sports",
	},
	{
		Prompt:   "What is the highest peak in Romania?",
		Options:  []string{"Moldoveanu Peak", "Negoiu Peak", "Omu Peak", "Retezat Peak"},
		Answer:   "Moldoveanu Peak",
		Category: "geography",
	},
}

var historyQuestions = []engine.Question{
	{
		Prompt:   "Who was the first king of modern Romania?",
		Options:  []string{"Carol I", "Ferdinand I", "Michael I", "Charles II"},
		Answer:   "Carol I",
		Category: "history",
	},
	{
		Prompt:   "In what year did the Romanian Revolution take place?",
		Options:  []string{"1989", "1991", "1986", "1979"},
		Answer:   "1989",
		Category: "history",
	},
	{
		Prompt:   "Which Roman emperor led the conquest of Dacia (modern-day Romania)?",
		Options:  []string{"Trajan", "Augustus", "Constantine", "Nero"},
		Answer:   "Trajan",
		Category: "history",
	},
	{
		Prompt:   "Who was Romania's communist leader from 1965 to 1989?",
		Options:  []string{"Nicolae Ceaușescu", "Ion Iliescu", "Gheorghe Gheorghiu-Dej", "Petru Groza"},
		Answer:   "Nicolae Ceaușescu",
		Category: "history",
	},
	{
		Prompt:   "What was the ancient name of Romania?",
		Options:  []string{"Dacia", "Thracia", "Illyria", "Pannonia"},
		Answer:   "Dacia",
		Category: "history",
	},
	{
		Prompt:   "Which medieval Romanian ruler is known for fighting against the Ottoman Empire?",
		Options:  []string{"Vlad the Impaler", "Stephen the Great", "Mircea the Elder", "Michael the Brave"},
		Answer:   "Vlad the Impaler",
		Category: "history",
	},
	{
		Prompt:   "What event in 1918 led to the creation of Greater Romania?",
		Options:  []string{"The Great Union", "Treaty of Versailles", "Treaty of Trianon", "Transylvanian Revolution"},
		Answer:   "The Great Union",
		Category: "history",
	},
}

var geographyQuestions = []engine.Question{
	{
		Prompt:   "Which sea borders Romania to the east?",
		Options:  []string{"Black Sea", "Mediterranean Sea", "Caspian Sea", "Adriatic Sea"},
		Answer:   "Black Sea",
		Category: "geography",
	},
	{
		Prompt:   "Which of these countries does NOT share a border with Romania?",
		Options:  []string{"Poland", "Hungary", "Ukraine", "Bulgaria"},
		Answer:   "Poland",
		Category: "geography",
	},
	{
		Prompt:   "What is the largest city in Transylvania?",
		Options:  []string{"Cluj-Napoca", "Brașov", "Sibiu", "Timișoara"},
		Answer:   "Cluj-Napoca",
		Category: "geography",
	},
	{
		Prompt:   "Which region is known as the \"granary of Romania\"?",
		Options:  []string{"Bărăgan Plain", "Transylvania", "Dobrogea", "Banat"},
		Answer:   "Bărăgan Plain",
		Category: "geography",
	},
	{
		Prompt:   "Which Romanian river flows into the Black Sea?",
		Options:  []string{"Danube", "Olt", "Mureș", "Siret"},
		Answer:   "Danube",
		Category: "geography",
	},
	{
		Prompt:   "What is the second largest city in Romania?",
		Options:  []string{"Cluj-Napoca", "Timișoara", "Iași", "Constanța"},
		Answer:   "Cluj-Napoca",
		Category: "geography",
	},
	{
		Prompt:   "In which region of Romania is the Danube Delta located?",
		Options:  []string{"Dobrogea", "Moldova", "Muntenia", "Oltenia"},
		Answer:   "Dobrogea",
		Category: "geography",
	},
}

var cultureQuestions = []engine.Question{
	{
		Prompt:   "Who composed the Romanian Rhapsody?",
		Options:  []string{"George Enescu", "Ciprian Porumbescu", "Dinu Lipatti", "Nicolae Breban"},
		Answer:   "George Enescu",
		Category: "culture",
	},
	{
		Prompt:   "What is the traditional Romanian blouse called?",
		Options:  []string{"Ie", "Opinci", "Marama", "Suman"},
		Answer:   "Ie",
		Category: "culture",
	},
	{
		Prompt:   "Which Romanian sculptor created \"The Endless Column\"?",
		Options:  []string{"Constantin Brâncuși", "Ion Jalea", "Corneliu Baba", "Nicolae Tonitza"},
		Answer:   "Constantin Brâncuși",
		Category: "culture",
	},
	{
		Prompt:   "Which Romanian film won the Palme d'Or at Cannes Film Festival in 2007?",
		Options:  []string{"4 Months, 3 Weeks and 2 Days", "Child's Pose", "The Death of Mr. Lazarescu", "Beyond the Hills"},
		Answer:   "4 Months, 3 Weeks and 2 Days",
		Category: "culture",
	},
	{
		Prompt:   "What is the name of the traditional Romanian dance where dancers form a circle?",
		Options:  []string{"Hora", "Samba", "Polka", "Waltz"},
		Answer:   "Hora",
		Category: "culture",
	},
}

var literatureQuestions = []engine.Question{
	{
		Prompt:   "Which Romanian writer was a prominent member of the Theatre of the Absurd?",
		Options:  []string{"Eugen Ionesco", "Mircea Eliade", "Emil Cioran", "Lucian Blaga"},
		Answer:   "Eugen Ionesco",
		Category: "literature",
	},
	{
		Prompt:   "Who wrote the novel \"The Forest of the Hanged\"?",
		Options:  []string{"Liviu Rebreanu", "Camil Petrescu", "Mihail Sadoveanu", "Marin Preda"},
		Answer:   "Liviu Rebreanu",
		Category: "literature",
	},
	{
		Prompt:   "Which Romanian author wrote \"Nostalgia\"?",
		Options:  []string{"Mircea Cărtărescu", "Norman Manea", "Herta Müller", "Dan Lungu"},
		Answer:   "Mircea Cărtărescu",
		Category: "literature",
	},
}

var sportsQuestions = []engine.Question{
	{
		Prompt:   "Which Romanian football team has won the European Cup (now Champions League)?",
		Options:  []string{"Steaua București", "Dinamo București", "Rapid București", "CFR Cluj"},
		Answer:   "Steaua București",
		Category: "sports",
	},
	{
		Prompt:   "Which sport brought Romania the most Olympic gold medals?",
		Options:  []string{"Gymnastics", "Rowing", "Athletics", "Boxing"},
		Answer:   "Gymnastics",
		Category: "sports",
	},
	{
		Prompt:   "Which Romanian tennis player won the Wimbledon Women's Singles title in 2019?",
		Options:  []string{"Simona Halep", "Sorana Cîrstea", "Monica Niculescu", "Irina-Camelia Begu"},
		Answer:   "Simona Halep",
		Category: "sports",
	},
}

var scienceQuestions = []engine.Question{
	{
		Prompt:   "Who is the Romanian inventor of the jet engine?",
		Options:  []string{"Henri Coandă", "Petrache Poenaru", "Aurel Vlaicu", "Traian Vuia"},
		Answer:   "Henri Coandă",
		Category: "science",
	},
	{
		Prompt:   "Which Romanian invented the first insulin extraction method?",
		Options:  []string{"Nicolae Paulescu", "Ana Aslan", "Victor Babeș", "Ioan Cantacuzino"},
		Answer:   "Nicolae Paulescu",
		Category: "science",
	},
	{
		Prompt:   "What did Petrache Poenaru invent?",
		Options:  []string{"The fountain pen", "The telephone", "The lightbulb", "The automobile"},
		Answer:   "The fountain pen",
		Category: "science",
	},
}

// All is every question across every bank.
func All() []engine.Question {
	out := make([]engine.Question, 0,
		len(romaniaQuestions)+len(historyQuestions)+len(geographyQuestions)+
			len(cultureQuestions)+len(literatureQuestions)+len(sportsQuestions)+
			len(scienceQuestions))
	out = append(out, romaniaQuestions...)
	out = append(out, historyQuestions...)
	out = append(out, geographyQuestions...)
	out = append(out, cultureQuestions...)
	out = append(out, literatureQuestions...)
	out = append(out, sportsQuestions...)
	out = append(out, scienceQuestions...)
	return out
}
