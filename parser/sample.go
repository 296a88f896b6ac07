package parser

// SampleCSV is a ten-player export in the stats-site column layout.
const SampleCSV = `Player_Name,Agent,Attack_Got_Round,Defense_Got_Round,Kill_All,Death_All,Assists_All,Fk_All,Fd_All,Acs_All,Adr_All,Kast_All,Hs_All
Meteor,Jett,6,5,24,18,8,4,2,312,189,75%,28%
Munchkin,Omen,6,5,16,15,14,2,3,201,128,71%,24%
Karon,Cypher,6,5,14,12,18,1,2,186,96,80%,22%
t3xture,Raze,6,5,20,16,10,3,1,267,165,68%,31%
valyn,Sova,6,5,18,14,12,2,2,234,142,77%,26%
Chronicle,Fade,6,5,15,13,16,1,3,198,118,75%,23%
Boaster,Omen,6,5,12,16,15,1,4,167,102,69%,19%
Alfajer,Killjoy,6,5,17,11,14,2,1,223,134,82%,25%
Derke,Jett,6,5,22,15,9,5,2,289,178,73%,29%
Leo,Sova,6,5,16,13,17,1,2,211,125,79%,24%`

// SampleHeaders are the columns of SampleCSV in order.
var SampleHeaders = []string{
	ColName, ColAgent, ColAttackRounds, ColDefenseRounds,
	ColKills, ColDeaths, ColAssists, ColFirstKills, ColFirstDeaths,
	ColACS, ColADR, ColKAST, ColHS,
}
