package gifts

// aliases maps the lower-cased spellings users type to canonical gift names.
// Order matters: suggestions are offered in this order.
var aliases = []alias{
	{"jack in the box", "Jack-in-the-Box"},
	{"jack-in the box", "Jack-in-the-Box"},
	{"jack-in-the box", "Jack-in-the-Box"},
	{"jack", "Jack-in-the-Box"},
	{"jack box", "Jack-in-the-Box"},
	{"jitb", "Jack-in-the-Box"},

	{"b day candle", "B-Day Candle"},
	{"b day-candle", "B-Day Candle"},
	{"bday candle", "B-Day Candle"},
	{"birthday candle", "B-Day Candle"},
	{"candle", "B-Day Candle"},

	{"plush", "Plush Pepe"},
	{"pepe", "Plush Pepe"},
	{"pepe plush", "Plush Pepe"},
	{"plush pepe", "Plush Pepe"},
	{"frog plush", "Plush Pepe"},
	{"frog", "Plush Pepe"},

	{"crystal", "Crystal Ball"},
	{"crystal ball", "Crystal Ball"},
	{"ball", "Crystal Ball"},
	{"magic ball", "Crystal Ball"},
	{"fortune ball", "Crystal Ball"},

	{"heart", "Heart Locket"},
	{"locket", "Heart Locket"},
	{"heart locket", "Heart Locket"},
	{"heart-locket", "Heart Locket"},

	{"teddy", "Toy Bear"},
	{"bear", "Toy Bear"},
	{"teddy bear", "Toy Bear"},
	{"toy bear", "Toy Bear"},

	{"bouquet", "Lush Bouquet"},
	{"flowers", "Lush Bouquet"},
	{"flower", "Lush Bouquet"},
	{"flower bouquet", "Lush Bouquet"},
	{"lush bouquet", "Lush Bouquet"},

	{"perfume", "Perfume Bottle"},
	{"fragrance", "Perfume Bottle"},
	{"scent", "Perfume Bottle"},
	{"perfume bottle", "Perfume Bottle"},

	{"diamond", "Diamond Ring"},
	{"ring", "Diamond Ring"},
	{"diamond ring", "Diamond Ring"},

	{"santa", "Santa Hat"},
	{"santa hat", "Santa Hat"},
	{"christmas hat", "Santa Hat"},

	{"signet", "Signet Ring"},
	{"signet ring", "Signet Ring"},

	{"peach", "Precious Peach"},
	{"precious peach", "Precious Peach"},

	{"wine", "Spiced Wine"},
	{"spiced wine", "Spiced Wine"},
	{"mulled wine", "Spiced Wine"},

	{"bunny", "Jelly Bunny"},
	{"jelly", "Jelly Bunny"},
	{"jelly bunny", "Jelly Bunny"},

	{"cap", "Durov's Cap"},
	{"durov", "Durov's Cap"},
	{"durovs cap", "Durov's Cap"},
	{"durov cap", "Durov's Cap"},

	{"rose", "Eternal Rose"},
	{"eternal rose", "Eternal Rose"},
	{"forever rose", "Eternal Rose"},

	{"berry", "Berry Box"},
	{"berries", "Berry Box"},
	{"berry box", "Berry Box"},

	{"cigar", "Vintage Cigar"},
	{"vintage cigar", "Vintage Cigar"},

	{"potion", "Magic Potion"},
	{"magic potion", "Magic Potion"},

	{"kissed", "Kissed Frog"},
	{"kissed frog", "Kissed Frog"},

	{"hex", "Hex Pot"},
	{"hex pot", "Hex Pot"},
	{"pot", "Hex Pot"},

	{"evil", "Evil Eye"},
	{"eye", "Evil Eye"},
	{"evil eye", "Evil Eye"},

	{"tongue", "Sharp Tongue"},
	{"sharp tongue", "Sharp Tongue"},

	{"trapped", "Trapped Heart"},
	{"trapped heart", "Trapped Heart"},

	{"skull", "Skull Flower"},
	{"skull flower", "Skull Flower"},

	{"cat", "Scared Cat"},
	{"scared cat", "Scared Cat"},
	{"scaredy cat", "Scared Cat"},

	{"agaric", "Spy Agaric"},
	{"spy", "Spy Agaric"},
	{"spy agaric", "Spy Agaric"},
	{"mushroom", "Spy Agaric"},

	{"cake", "Homemade Cake"},
	{"homemade", "Homemade Cake"},
	{"homemade cake", "Homemade Cake"},

	{"genie", "Genie Lamp"},
	{"lamp", "Genie Lamp"},
	{"genie lamp", "Genie Lamp"},
	{"magic lamp", "Genie Lamp"},

	{"lunar", "Lunar Snake"},
	{"lunar snake", "Lunar Snake"},

	{"sparkler", "Party Sparkler"},
	{"party sparkler", "Party Sparkler"},
	{"sparkle", "Party Sparkler"},

	{"jester", "Jester Hat"},
	{"jester hat", "Jester Hat"},

	{"witch", "Witch Hat"},
	{"witch hat", "Witch Hat"},

	{"star", "Hanging Star"},
	{"hanging star", "Hanging Star"},

	{"love candle", "Love Candle"},

	{"cookie", "Cookie Heart"},
	{"cookie heart", "Cookie Heart"},
	{"heart cookie", "Cookie Heart"},

	{"snow", "Snow Globe"},
	{"globe", "Snow Globe"},
	{"snow globe", "Snow Globe"},

	{"drink", "Holiday Drink"},
	{"holiday", "Holiday Drink"},
	{"holiday drink", "Holiday Drink"},

	{"sword", "Light Sword"},
	{"light", "Light Sword"},
	{"light sword", "Light Sword"},
	{"lightsaber", "Light Sword"},

	{"bow", "Bow Tie"},
	{"tie", "Bow Tie"},
	{"bow tie", "Bow Tie"},

	{"bracelet", "Nail Bracelet"},
	{"nail", "Nail Bracelet"},
	{"nail bracelet", "Nail Bracelet"},
}
